package stages

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"bid-agent-be/pkg/agent/capability"
	"bid-agent-be/pkg/llm"
	"bid-agent-be/pkg/rules"
	"bid-agent-be/pkg/store"
)

// LLMProvider implements the four capability ports on top of a chat model.
// Every response is decoded against the stage schema; malformed output is a
// stage failure, never a guess. The rule engine supplies the guarded
// projection after classification.
type LLMProvider struct {
	model llm.LLMProvider
	rules *rules.Engine
}

var _ capability.Provider = &LLMProvider{}

func NewLLMProvider(model llm.LLMProvider) *LLMProvider {
	return &LLMProvider{
		model: model,
		rules: rules.NewEngine(),
	}
}

type extractionSchema struct {
	ProjectName          string  `json:"project_name"`
	EstimatedAmount      float64 `json:"estimated_amount"`
	TotalBudgetVAT       float64 `json:"total_budget_vat"`
	ContractPeriod       string  `json:"contract_period"`
	DeliveryDeadlineDays int     `json:"delivery_deadline_days"`
	ProcurementType      string  `json:"procurement_type"`
	QualificationNotes   string  `json:"qualification_notes"`
	DeterminationMethod  string  `json:"determination_method"`
}

func (p *LLMProvider) Extract(ctx context.Context, rawText string) (*store.ExtractedData, error) {
	prompt := fmt.Sprintf(extractionPromptTemplate, rawText)
	raw, err := p.model.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return nil, fmt.Errorf("extract stage: %w", err)
	}

	var out extractionSchema
	if err := decodeStrict(raw, &out); err != nil {
		return nil, fmt.Errorf("extract stage: %w", err)
	}
	if out.ProjectName == "" || out.ProcurementType == "" {
		return nil, fmt.Errorf("extract stage: %w: project_name and procurement_type are required", ErrSchema)
	}

	return &store.ExtractedData{
		ProjectName:          out.ProjectName,
		EstimatedAmount:      out.EstimatedAmount,
		TotalBudgetVAT:       out.TotalBudgetVAT,
		ContractPeriod:       out.ContractPeriod,
		DeliveryDeadlineDays: out.DeliveryDeadlineDays,
		ProcurementType:      out.ProcurementType,
		QualificationNotes:   out.QualificationNotes,
		DeterminationMethod:  out.DeterminationMethod,
	}, nil
}

type classificationSchema struct {
	RecommendedType  string   `json:"recommended_type"`
	Confidence       float64  `json:"confidence"`
	Reason           string   `json:"reason"`
	AlternativeTypes []string `json:"alternative_types"`
}

func (p *LLMProvider) Classify(ctx context.Context, data *store.ExtractedData) (*store.Classification, error) {
	facts, _ := json.Marshal(data)
	prompt := fmt.Sprintf(classificationPromptTemplate, string(facts))
	raw, err := p.model.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return nil, fmt.Errorf("classify stage: %w", err)
	}

	var out classificationSchema
	if err := decodeStrict(raw, &out); err != nil {
		return nil, fmt.Errorf("classify stage: %w", err)
	}
	if out.RecommendedType == "" || out.Confidence < 0 || out.Confidence > 1 {
		return nil, fmt.Errorf("classify stage: %w: recommended_type required, confidence must be within [0,1]", ErrSchema)
	}

	cls := &store.Classification{
		RecommendedType:  out.RecommendedType,
		Confidence:       out.Confidence,
		Reason:           out.Reason,
		AlternativeTypes: out.AlternativeTypes,
	}
	rules.ApplyGuardedFields(cls, data)
	return cls, nil
}

func (p *LLMProvider) Generate(ctx context.Context, req capability.GenerateRequest) (string, error) {
	facts, _ := json.Marshal(req.Data)

	var derived strings.Builder
	keys := make([]string, 0, len(req.Hints.DerivedFields))
	for k := range req.Hints.DerivedFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&derived, "- %s: %s\n", k, req.Hints.DerivedFields[k])
	}

	extra := ""
	if len(req.Hints.RevisionSuggestions) > 0 {
		findings, _ := json.Marshal(req.Hints.RevisionSuggestions)
		extra = fmt.Sprintf(revisionPromptAddendum, string(findings))
	}
	if req.Hints.UserPrompt != "" {
		extra += "\nAdditional request from the drafter: " + req.Hints.UserPrompt + "\n"
	}

	prompt := fmt.Sprintf(generationPromptTemplate,
		req.Template.Content,
		string(facts),
		req.Guarded.ContractMethod,
		req.Guarded.AppliedAnnex,
		req.Guarded.SMERestriction,
		derived.String(),
		extra,
	)

	// Generation is the one long-output stage; a full announcement can run
	// past the backends' default ceilings.
	doc, err := p.model.Generate(ctx, prompt, llm.WithTemperature(0.3), llm.WithMaxTokens(4096))
	if err != nil {
		return "", fmt.Errorf("generate stage: %w", err)
	}
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return "", fmt.Errorf("generate stage: %w: empty document", ErrSchema)
	}
	return doc, nil
}

type validationSchema struct {
	IsValid     bool                    `json:"is_valid"`
	Issues      []store.ValidationIssue `json:"issues"`
	CheckedLaws []string                `json:"checked_laws"`
}

func (p *LLMProvider) Validate(ctx context.Context, document, lawReferences string) (*store.ValidationResult, error) {
	prompt := fmt.Sprintf(validationPromptTemplate, document, lawReferences)
	raw, err := p.model.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return nil, fmt.Errorf("validate stage: %w", err)
	}

	var out validationSchema
	if err := decodeStrict(raw, &out); err != nil {
		return nil, fmt.Errorf("validate stage: %w", err)
	}
	for _, issue := range out.Issues {
		if issue.Suggestion == "" || issue.Severity == "" {
			return nil, fmt.Errorf("validate stage: %w: every issue needs a suggestion and severity", ErrSchema)
		}
	}

	return &store.ValidationResult{
		IsValid:     out.IsValid,
		Issues:      out.Issues,
		CheckedLaws: out.CheckedLaws,
		Timestamp:   time.Now(),
	}, nil
}
