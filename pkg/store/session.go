package store

import (
	"time"
)

// Step is the pipeline stage a session will attempt next.
type Step string

const (
	StepUpload   Step = "upload"
	StepExtract  Step = "extract"
	StepClassify Step = "classify"
	StepGenerate Step = "generate"
	StepValidate Step = "validate"
	StepRevise   Step = "revise"
	StepComplete Step = "complete"
)

// MaxRetry bounds the automatic revise -> validate loop per session.
const MaxRetry = 2

// QualificationDetail carries the qualification constraints pulled out of a
// procurement plan.
type QualificationDetail struct {
	DetailItemCode        string `json:"detail_item_code,omitempty"`
	SMERestriction        string `json:"sme_restriction,omitempty"`
	TechnicalRequirements string `json:"technical_requirements,omitempty"`
	LicenseRequirements   string `json:"license_requirements,omitempty"`
}

// ExtractedData is the structured output of the extraction stage.
type ExtractedData struct {
	ProjectName          string               `json:"project_name"`
	ItemName             string               `json:"item_name,omitempty"`
	EstimatedAmount      float64              `json:"estimated_amount"`
	TotalBudgetVAT       float64              `json:"total_budget_vat,omitempty"`
	ContractPeriod       string               `json:"contract_period,omitempty"`
	DeliveryDeadlineDays int                  `json:"delivery_deadline_days,omitempty"`
	ProcurementType      string               `json:"procurement_type"`
	ProcurementMethodRaw string               `json:"procurement_method_raw,omitempty"`
	DeterminationMethod  string               `json:"determination_method,omitempty"`
	QualificationNotes   string               `json:"qualification_notes,omitempty"`
	Qualification        *QualificationDetail `json:"qualification,omitempty"`
}

// Amount returns the budget figure used for rule evaluation, preferring the
// VAT-inclusive total when present.
func (e *ExtractedData) Amount() float64 {
	if e.TotalBudgetVAT > 0 {
		return e.TotalBudgetVAT
	}
	return e.EstimatedAmount
}

// Classification is the authoritative output of the classify stage. Once set,
// RecommendedType and the guarded fields derived from it are never mutated by
// later stages.
type Classification struct {
	RecommendedType  string   `json:"recommended_type"`
	Confidence       float64  `json:"confidence"`
	Reason           string   `json:"reason"`
	AlternativeTypes []string `json:"alternative_types,omitempty"`

	// Rule-engine-authoritative projection, write-once per classification.
	ContractMethod string `json:"contract_method,omitempty"`
	AppliedAnnex   string `json:"applied_annex,omitempty"`
	SMERestriction string `json:"sme_restriction,omitempty"`
}

// ValidationIssue is a single statutory finding against a generated draft.
type ValidationIssue struct {
	Law         string `json:"law"`
	Section     string `json:"section"`
	IssueType   string `json:"issue_type"`
	CurrentText string `json:"current_text,omitempty"`
	Suggestion  string `json:"suggestion"`
	Severity    string `json:"severity"`
}

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// ValidationResult is the full output of one validate stage invocation.
type ValidationResult struct {
	IsValid     bool              `json:"is_valid"`
	Issues      []ValidationIssue `json:"issues"`
	CheckedLaws []string          `json:"checked_laws,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// HasCriticalIssues reports whether any finding is high severity.
func (v *ValidationResult) HasCriticalIssues() bool {
	for _, issue := range v.Issues {
		if issue.Severity == SeverityHigh {
			return true
		}
	}
	return false
}

// Feedback types accepted by the feedback handler.
const (
	FeedbackApprove = "approve"
	FeedbackReject  = "reject"
	FeedbackModify  = "modify"
)

// UserFeedback is the terminal reviewer decision recorded on a session.
type UserFeedback struct {
	Type            string    `json:"type"`
	Comments        string    `json:"comments,omitempty"`
	ModifiedContent string    `json:"modified_content,omitempty"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// Session tracks one uploaded procurement plan through the drafting pipeline.
// It is mutated only by the workflow engine and the feedback handler.
type Session struct {
	ID   string `json:"id"`
	Step Step   `json:"step"`

	RetryCount int    `json:"retry_count"`
	LastError  string `json:"last_error,omitempty"`

	SelectedTemplateID string `json:"selected_template_id,omitempty"`

	RawText  string `json:"raw_text,omitempty"`
	FileName string `json:"file_name,omitempty"`

	ExtractedData     *ExtractedData    `json:"extracted_data,omitempty"`
	Classification    *Classification   `json:"classification,omitempty"`
	GeneratedDocument string            `json:"generated_document,omitempty"`
	ValidationIssues  []ValidationIssue `json:"validation_issues"`

	UserFeedback *UserFeedback `json:"user_feedback,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession builds a session ready for the extract stage.
func NewSession(id, rawText, fileName, templateID string) *Session {
	now := time.Now()
	return &Session{
		ID:                 id,
		Step:               StepExtract,
		RawText:            rawText,
		FileName:           fileName,
		SelectedTemplateID: templateID,
		ValidationIssues:   []ValidationIssue{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// TransitionTo moves the session to the next pipeline step.
func (s *Session) TransitionTo(next Step) {
	s.Step = next
	s.UpdatedAt = time.Now()
}

// CanRetry reports whether another automatic revision cycle is allowed.
func (s *Session) CanRetry() bool {
	return s.RetryCount < MaxRetry
}

// IncrementRetry counts one revise -> validate cycle. Capability failures are
// not charged here; the caller may simply re-run the same step.
func (s *Session) IncrementRetry() {
	s.RetryCount++
	s.UpdatedAt = time.Now()
}

// AddError records a stage failure without advancing the pipeline.
func (s *Session) AddError(msg string) {
	s.LastError = msg
	s.UpdatedAt = time.Now()
}

// ClearError wipes the diagnostic after a successful stage.
func (s *Session) ClearError() {
	s.LastError = ""
}

// HasDocument reports whether generation has produced a draft.
func (s *Session) HasDocument() bool {
	return s.GeneratedDocument != ""
}

// Clone returns a deep copy so the engine can compute a full mutation before
// persisting it atomically.
func (s *Session) Clone() *Session {
	cp := *s
	if s.ExtractedData != nil {
		data := *s.ExtractedData
		if s.ExtractedData.Qualification != nil {
			q := *s.ExtractedData.Qualification
			data.Qualification = &q
		}
		cp.ExtractedData = &data
	}
	if s.Classification != nil {
		cls := *s.Classification
		cls.AlternativeTypes = append([]string(nil), s.Classification.AlternativeTypes...)
		cp.Classification = &cls
	}
	if s.UserFeedback != nil {
		fb := *s.UserFeedback
		cp.UserFeedback = &fb
	}
	cp.ValidationIssues = append([]ValidationIssue(nil), s.ValidationIssues...)
	return &cp
}
