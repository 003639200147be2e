// Package guard re-checks generated drafts against the rule-engine
// authoritative fields. The generate stage receives those fields read-only;
// divergence is surfaced as a high-severity validation issue instead of being
// silently corrected.
package guard

import (
	"strings"

	"bid-agent-be/pkg/rules"
	"bid-agent-be/pkg/store"
	"bid-agent-be/pkg/template"
)

// methodLabels are the phrases an announcement uses for each contract method.
var methodLabels = map[string]string{
	rules.MethodQualificationReview: "qualification review",
	rules.MethodLowestPrice:         "lowest price",
	rules.MethodNegotiatedContract:  "negotiated contract",
}

// Check compares a generated document against the guarded projection and
// returns one issue per divergence. An empty result means the draft respects
// every authoritative field.
func Check(guarded template.GuardedFields, document string) []store.ValidationIssue {
	var issues []store.ValidationIssue
	lower := strings.ToLower(document)

	wantLabel := methodLabels[guarded.ContractMethod]
	if wantLabel != "" && !strings.Contains(lower, wantLabel) {
		issues = append(issues, store.ValidationIssue{
			Law:        "National Contract Act",
			Section:    "award method",
			IssueType:  "guard_violation",
			Suggestion: "state the award method as \"" + wantLabel + "\"; it was fixed by classification and must not change",
			Severity:   store.SeverityHigh,
		})
	}

	for method, label := range methodLabels {
		if method == guarded.ContractMethod {
			continue
		}
		if strings.Contains(lower, "award method: "+label) {
			issues = append(issues, store.ValidationIssue{
				Law:         "National Contract Act",
				Section:     "award method",
				IssueType:   "guard_violation",
				CurrentText: label,
				Suggestion:  "remove the conflicting award method \"" + label + "\"; the authoritative method is \"" + wantLabel + "\"",
				Severity:    store.SeverityHigh,
			})
		}
	}

	if guarded.AppliedAnnex != "" && !strings.Contains(lower, strings.ToLower(guarded.AppliedAnnex)) {
		issues = append(issues, store.ValidationIssue{
			Law:        "National Contract Act",
			Section:    "statute citation",
			IssueType:  "guard_violation",
			Suggestion: "cite the applicable provision verbatim: " + guarded.AppliedAnnex,
			Severity:   store.SeverityHigh,
		})
	}

	return issues
}
