package template

import (
	"strings"
	"testing"
	"time"

	"bid-agent-be/pkg/rules"
	"bid-agent-be/pkg/store"
)

func TestSelectByMethod(t *testing.T) {
	p := NewProvider()

	for _, method := range rules.KnownMethods() {
		t.Run(method, func(t *testing.T) {
			doc, err := p.SelectByMethod(method)
			if err != nil {
				t.Fatalf("SelectByMethod(%s) error: %v", method, err)
			}
			if doc.Method != method {
				t.Errorf("Method = %s, want %s", doc.Method, method)
			}
			if !strings.Contains(doc.Content, "{project_name}") {
				t.Error("template must carry the project_name placeholder")
			}
			// Guarded fields are rendered from authoritative values only.
			for _, guarded := range []string{"applied_annex", "sme_restriction"} {
				found := false
				for _, ph := range doc.Placeholders {
					if ph == guarded {
						found = true
					}
				}
				if !found {
					t.Errorf("Placeholders = %v, want %s listed", doc.Placeholders, guarded)
				}
			}
		})
	}
}

func TestSelectByMethodUnknown(t *testing.T) {
	p := NewProvider()
	if _, err := p.SelectByMethod("design_build"); err == nil {
		t.Error("unknown method must fail selection")
	}
}

func TestSelectUsesAuthoritativeMethod(t *testing.T) {
	p := NewProvider()
	cls := &store.Classification{
		RecommendedType: rules.MethodLowestPrice,
		ContractMethod:  rules.MethodLowestPrice,
	}

	doc, err := p.Select(cls)
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if doc.ID != "template_"+rules.MethodLowestPrice {
		t.Errorf("ID = %s, want template_lowest_price", doc.ID)
	}
}

func TestList(t *testing.T) {
	p := NewProvider()
	methods := p.List()
	if len(methods) != 3 {
		t.Fatalf("List = %v, want 3 methods", methods)
	}
}

func TestDerivedFields(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	fields := DerivedFields(now)

	if fields["announcement_date"] != "2026-03-02" {
		t.Errorf("announcement_date = %s", fields["announcement_date"])
	}
	if fields["bid_deadline"] != "2026-03-16 15:00" {
		t.Errorf("bid_deadline = %s, want two weeks out", fields["bid_deadline"])
	}
	if fields["opening_date"] != "2026-03-17 15:00" {
		t.Errorf("opening_date = %s, want the day after the deadline", fields["opening_date"])
	}
	if fields["award_date"] != "2026-03-24" {
		t.Errorf("award_date = %s, want a week after opening", fields["award_date"])
	}
	if fields["announcement_number"] != "Notice No. 2026-03-02" {
		t.Errorf("announcement_number = %s", fields["announcement_number"])
	}
}

func TestGuardedFrom(t *testing.T) {
	cls := &store.Classification{
		RecommendedType: rules.MethodQualificationReview,
		ContractMethod:  rules.MethodQualificationReview,
		AppliedAnnex:    "Enforcement Decree Art. 42 (qualification review)",
		SMERestriction:  "SME only",
	}

	guarded := GuardedFrom(cls)

	if guarded.ContractMethod != cls.ContractMethod ||
		guarded.AppliedAnnex != cls.AppliedAnnex ||
		guarded.SMERestriction != cls.SMERestriction {
		t.Errorf("GuardedFrom = %+v, want projection of %+v", guarded, cls)
	}
}
