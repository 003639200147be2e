package stages

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bid-agent-be/pkg/agent/capability"
	"bid-agent-be/pkg/rules"
	"bid-agent-be/pkg/store"
)

// LocalProvider is a deterministic, in-process capability provider: labeled
// field extraction, rule-engine classification, template substitution, and a
// phrasing lint for validation. It backs `LLM_PROVIDER=none` deployments and
// keeps the whole pipeline runnable without a model.
type LocalProvider struct {
	rules *rules.Engine
}

var _ capability.Provider = &LocalProvider{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{rules: rules.NewEngine()}
}

// fieldLabels maps the "Label: value" lines a procurement plan export uses
// onto extraction fields.
var fieldLabels = map[string]string{
	"project":             "project_name",
	"project name":        "project_name",
	"item":                "item_name",
	"budget":              "estimated_amount",
	"estimated amount":    "estimated_amount",
	"total budget":        "total_budget_vat",
	"contract period":     "contract_period",
	"delivery deadline":   "delivery_deadline_days",
	"category":            "procurement_type",
	"procurement type":    "procurement_type",
	"qualification":       "qualification_notes",
	"eligibility":         "qualification_notes",
	"award method":        "determination_method",
	"technical":           "technical_requirements",
	"sme restriction":     "sme_restriction",
	"license requirement": "license_requirements",
}

func (p *LocalProvider) Extract(_ context.Context, rawText string) (*store.ExtractedData, error) {
	data := &store.ExtractedData{}
	qual := &store.QualificationDetail{}

	for _, line := range strings.Split(rawText, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, known := fieldLabels[strings.ToLower(strings.TrimSpace(strings.TrimLeft(label, "-# ")))]
		if !known {
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case "project_name":
			data.ProjectName = value
		case "item_name":
			data.ItemName = value
		case "estimated_amount":
			data.EstimatedAmount = parseAmount(value)
		case "total_budget_vat":
			data.TotalBudgetVAT = parseAmount(value)
		case "contract_period":
			data.ContractPeriod = value
		case "delivery_deadline_days":
			if fields := strings.Fields(value); len(fields) > 0 {
				if days, err := strconv.Atoi(fields[0]); err == nil {
					data.DeliveryDeadlineDays = days
				}
			}
		case "procurement_type":
			data.ProcurementType = normalizeProcurementType(value)
		case "qualification_notes":
			data.QualificationNotes = value
		case "determination_method":
			data.DeterminationMethod = value
		case "technical_requirements":
			qual.TechnicalRequirements = value
		case "sme_restriction":
			qual.SMERestriction = value
		case "license_requirements":
			qual.LicenseRequirements = value
		}
	}

	if *qual != (store.QualificationDetail{}) {
		data.Qualification = qual
	}
	if data.ProjectName == "" || data.ProcurementType == "" {
		return nil, fmt.Errorf("extract stage: %w: plan text lacks a project name or procurement category", ErrSchema)
	}
	return data, nil
}

func (p *LocalProvider) Classify(_ context.Context, data *store.ExtractedData) (*store.Classification, error) {
	return p.rules.Classify(data), nil
}

func (p *LocalProvider) Generate(_ context.Context, req capability.GenerateRequest) (string, error) {
	values := map[string]string{
		"project_name":        req.Data.ProjectName,
		"estimated_amount":    formatAmount(req.Data.Amount()),
		"contract_period":     orDefault(req.Data.ContractPeriod, "as specified in the contract"),
		"qualification_notes": orDefault(req.Data.QualificationNotes, "- open to all eligible bidders"),
		"applied_annex":       req.Guarded.AppliedAnnex,
		"sme_restriction":     req.Guarded.SMERestriction,
	}
	for k, v := range req.Hints.DerivedFields {
		values[k] = v
	}

	doc := req.Template.Content
	for key, value := range values {
		doc = strings.ReplaceAll(doc, "{"+key+"}", value)
	}

	if req.Hints.UserPrompt != "" {
		doc += "\n### Notes\n" + req.Hints.UserPrompt + "\n"
	}
	// Apply the reviewer suggestions textually where the flagged text is
	// still present.
	for _, issue := range req.Hints.RevisionSuggestions {
		if issue.CurrentText != "" && issue.Suggestion != "" && strings.Contains(doc, issue.CurrentText) {
			doc = strings.ReplaceAll(doc, issue.CurrentText, issue.Suggestion)
		}
	}
	return doc, nil
}

// Validate lints the canonical phrasing mistakes a drafting pass makes; the
// flagship example is "below the planned price" where the statute demands
// "at or below".
func (p *LocalProvider) Validate(_ context.Context, document, _ string) (*store.ValidationResult, error) {
	var issues []store.ValidationIssue

	lower := strings.ToLower(document)
	if strings.Contains(lower, "below the planned price") && !strings.Contains(lower, "at or below the planned price") {
		issues = append(issues, store.ValidationIssue{
			Law:         "National Contract Act",
			Section:     "Art. 27",
			IssueType:   "phrasing",
			CurrentText: "below the planned price",
			Suggestion:  "at or below the planned price",
			Severity:    store.SeverityMedium,
		})
	}
	for _, required := range []string{"award method", "schedule"} {
		if !strings.Contains(lower, required) {
			issues = append(issues, store.ValidationIssue{
				Law:        "National Contract Act",
				Section:    "Art. 10",
				IssueType:  "missing_section",
				Suggestion: "add the mandatory \"" + required + "\" section",
				Severity:   store.SeverityHigh,
			})
		}
	}

	return &store.ValidationResult{
		IsValid:     len(issues) == 0,
		Issues:      issues,
		CheckedLaws: []string{"National Contract Act", "Enforcement Decree"},
		Timestamp:   time.Now(),
	}, nil
}

func parseAmount(value string) float64 {
	cleaned := strings.NewReplacer(",", "", " ", "", "KRW", "", "krw", "").Replace(value)
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return amount
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

func normalizeProcurementType(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "construction", "works":
		return rules.ProcurementConstruction
	case "service", "services":
		return rules.ProcurementService
	case "goods", "supplies", "product", "products":
		return rules.ProcurementGoods
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
