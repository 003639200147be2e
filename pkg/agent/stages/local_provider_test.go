package stages

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bid-agent-be/pkg/agent/capability"
	"bid-agent-be/pkg/rules"
	"bid-agent-be/pkg/store"
	"bid-agent-be/pkg/template"
)

const samplePlan = `# Procurement Plan
Project: Sewage facility modernization
Category: construction
Budget: 350,000,000 KRW
Total budget: 385,000,000 KRW
Contract period: 12 months
SME restriction: SME only
Technical: certified wastewater treatment operation
`

func TestLocalProviderExtract(t *testing.T) {
	p := NewLocalProvider()

	data, err := p.Extract(context.Background(), samplePlan)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	if data.ProjectName != "Sewage facility modernization" {
		t.Errorf("ProjectName = %q", data.ProjectName)
	}
	if data.ProcurementType != rules.ProcurementConstruction {
		t.Errorf("ProcurementType = %q, want construction", data.ProcurementType)
	}
	if data.EstimatedAmount != 350_000_000 {
		t.Errorf("EstimatedAmount = %f", data.EstimatedAmount)
	}
	if data.TotalBudgetVAT != 385_000_000 {
		t.Errorf("TotalBudgetVAT = %f", data.TotalBudgetVAT)
	}
	if data.Amount() != 385_000_000 {
		t.Errorf("Amount = %f, want the VAT-inclusive total", data.Amount())
	}
	if data.Qualification == nil || data.Qualification.SMERestriction != "SME only" {
		t.Errorf("Qualification = %+v", data.Qualification)
	}
}

func TestLocalProviderExtractEmptyLabeledValues(t *testing.T) {
	p := NewLocalProvider()

	// Exports routinely carry labels with the value left blank; they must be
	// treated as absent, not crash extraction.
	data, err := p.Extract(context.Background(), strings.Join([]string{
		"Project: Road works",
		"Category: construction",
		"Delivery deadline:",
		"Budget:",
	}, "\n"))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if data.DeliveryDeadlineDays != 0 {
		t.Errorf("DeliveryDeadlineDays = %d, want 0 for a blank value", data.DeliveryDeadlineDays)
	}
	if data.EstimatedAmount != 0 {
		t.Errorf("EstimatedAmount = %f, want 0 for a blank value", data.EstimatedAmount)
	}
}

func TestLocalProviderExtractRejectsBarePlan(t *testing.T) {
	p := NewLocalProvider()

	_, err := p.Extract(context.Background(), "nothing machine readable here")
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("err = %v, want ErrSchema", err)
	}
}

func TestLocalProviderClassify(t *testing.T) {
	p := NewLocalProvider()

	data, err := p.Extract(context.Background(), samplePlan)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	cls, err := p.Classify(context.Background(), data)
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}

	if cls.RecommendedType != rules.MethodQualificationReview {
		t.Errorf("RecommendedType = %s (reason: %s)", cls.RecommendedType, cls.Reason)
	}
	if cls.ContractMethod != cls.RecommendedType {
		t.Error("guarded contract method must mirror the recommendation")
	}
	if cls.SMERestriction != "SME only" {
		t.Errorf("SMERestriction = %q", cls.SMERestriction)
	}
}

func TestLocalProviderGenerate(t *testing.T) {
	p := NewLocalProvider()
	templates := template.NewProvider()

	data, err := p.Extract(context.Background(), samplePlan)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	cls, err := p.Classify(context.Background(), data)
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	doc, err := templates.Select(cls)
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}

	draft, err := p.Generate(context.Background(), capability.GenerateRequest{
		Data:     data,
		Guarded:  template.GuardedFrom(cls),
		Template: doc,
		Hints: capability.GenerationHints{
			DerivedFields: template.DerivedFields(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)),
		},
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	for _, want := range []string{
		"Sewage facility modernization",
		"385000000",
		"Enforcement Decree Art. 42 (qualification review)",
		"SME only",
		"2026-03-02",
	} {
		if !strings.Contains(draft, want) {
			t.Errorf("draft missing %q", want)
		}
	}
	for _, ph := range doc.Placeholders {
		if strings.Contains(draft, "{"+ph+"}") {
			t.Errorf("placeholder %q left unsubstituted", ph)
		}
	}
}

func TestLocalProviderGenerateAppliesSuggestions(t *testing.T) {
	p := NewLocalProvider()

	draft, err := p.Generate(context.Background(), capability.GenerateRequest{
		Data: &store.ExtractedData{ProjectName: "x", EstimatedAmount: 1000},
		Template: &template.Document{
			ID:      "template_custom",
			Content: "Award at the lowest bid below the planned price.",
		},
		Hints: capability.GenerationHints{
			RevisionSuggestions: []store.ValidationIssue{{
				CurrentText: "below the planned price",
				Suggestion:  "at or below the planned price",
			}},
		},
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if !strings.Contains(draft, "at or below the planned price") {
		t.Errorf("draft = %q, suggestion not applied", draft)
	}
}

func TestLocalProviderValidate(t *testing.T) {
	p := NewLocalProvider()

	t.Run("flags statutory phrasing", func(t *testing.T) {
		result, err := p.Validate(context.Background(), "Award method: lowest bid below the planned price.\nSchedule: TBD\n", "")
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if result.IsValid {
			t.Error("IsValid = true, want phrasing issue")
		}
		found := false
		for _, issue := range result.Issues {
			if issue.CurrentText == "below the planned price" && issue.Severity == store.SeverityMedium {
				found = true
			}
		}
		if !found {
			t.Errorf("Issues = %+v, want the phrasing lint", result.Issues)
		}
	})

	t.Run("flags missing mandatory sections", func(t *testing.T) {
		result, err := p.Validate(context.Background(), "Just a paragraph of prose.", "")
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if len(result.Issues) != 2 {
			t.Fatalf("Issues = %d, want award method + schedule flagged", len(result.Issues))
		}
		for _, issue := range result.Issues {
			if issue.Severity != store.SeverityHigh {
				t.Errorf("Severity = %s, want high for missing sections", issue.Severity)
			}
		}
	})

	t.Run("accepts a complete draft", func(t *testing.T) {
		result, err := p.Validate(context.Background(), "Award method: qualification review\nSchedule: see below\nAward at or below the planned price.\n", "")
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if !result.IsValid {
			t.Errorf("IsValid = false, issues: %+v", result.Issues)
		}
	})
}
