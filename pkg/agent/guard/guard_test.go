package guard

import (
	"testing"

	"bid-agent-be/pkg/rules"
	"bid-agent-be/pkg/store"
	"bid-agent-be/pkg/template"
)

func TestCheckCleanDocument(t *testing.T) {
	guarded := template.GuardedFields{
		ContractMethod: rules.MethodQualificationReview,
		AppliedAnnex:   "Enforcement Decree Art. 42 (qualification review)",
	}
	document := `## Bid Announcement
- Award method: qualification review under Enforcement Decree Art. 42 (qualification review)
`

	issues := Check(guarded, document)
	if len(issues) != 0 {
		t.Errorf("issues = %v, want none", issues)
	}
}

func TestCheckMissingMethodLabel(t *testing.T) {
	guarded := template.GuardedFields{ContractMethod: rules.MethodLowestPrice}
	document := "## Bid Announcement\nNo award section at all.\n"

	issues := Check(guarded, document)

	if len(issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(issues))
	}
	if issues[0].IssueType != "guard_violation" || issues[0].Severity != store.SeverityHigh {
		t.Errorf("issue = %+v, want high-severity guard_violation", issues[0])
	}
}

func TestCheckConflictingMethod(t *testing.T) {
	guarded := template.GuardedFields{ContractMethod: rules.MethodQualificationReview}
	document := `- Award method: qualification review
- Award method: lowest price
`

	issues := Check(guarded, document)

	found := false
	for _, issue := range issues {
		if issue.CurrentText == "lowest price" {
			found = true
		}
	}
	if !found {
		t.Errorf("issues = %v, want the conflicting lowest price flagged", issues)
	}
}

func TestCheckMissingAnnexCitation(t *testing.T) {
	guarded := template.GuardedFields{
		ContractMethod: rules.MethodNegotiatedContract,
		AppliedAnnex:   "National Contract Act Art. 26 (negotiated contract)",
	}
	document := "- Award method: negotiated contract, statute omitted\n"

	issues := Check(guarded, document)

	if len(issues) != 1 {
		t.Fatalf("issues = %d, want 1 (annex citation)", len(issues))
	}
	if issues[0].Section != "statute citation" {
		t.Errorf("Section = %s, want statute citation", issues[0].Section)
	}
}
