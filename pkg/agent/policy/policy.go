// Package policy holds the pure decision function that maps a session and the
// latest stage result onto the next workflow state. All branching lives here;
// the engine only executes what this package decides.
package policy

import (
	"bid-agent-be/pkg/store"
)

// Verdict is the outcome tag of one decision.
type Verdict string

const (
	// VerdictContinue keeps the run loop going.
	VerdictContinue Verdict = "continue"

	// VerdictComplete ends the run with a clean document.
	VerdictComplete Verdict = "complete"

	// VerdictCompleteWithIssues ends the run after retries were exhausted
	// with only non-critical findings remaining.
	VerdictCompleteWithIssues Verdict = "revised_with_remaining_issues"

	// VerdictNeedsUserConfirmation pauses for a human to confirm a
	// low-confidence classification.
	VerdictNeedsUserConfirmation Verdict = "needs_user_confirmation"

	// VerdictNeedsHumanIntervention pauses after retries are exhausted with
	// critical findings remaining.
	VerdictNeedsHumanIntervention Verdict = "needs_human_intervention"

	// VerdictError pauses at the current step after a capability failure.
	VerdictError Verdict = "error"
)

// Pausing reports whether the verdict stops the run loop.
func (v Verdict) Pausing() bool {
	return v != VerdictContinue
}

// StageOutput is the result of one capability port invocation, tagged with
// the step that produced it. Exactly one payload field is set on success.
type StageOutput struct {
	Step store.Step

	Extracted      *store.ExtractedData
	Classification *store.Classification
	Document       string
	Validation     *store.ValidationResult

	Err error
}

// Decision is the computed transition: where the session goes next and which
// bookkeeping mutations apply. The engine persists it atomically.
type Decision struct {
	NextStep       store.Step
	Verdict        Verdict
	IncrementRetry bool
	RecordError    string
}

// Policy is a pure function parameterized by the confidence gate and retry
// ceiling. It holds no mutable state.
type Policy struct {
	ConfidenceThreshold float64
	MaxRetry            int
}

// Default matches the product constants: confirm below 0.6 confidence, two
// automatic revision cycles.
func Default() Policy {
	return Policy{ConfidenceThreshold: 0.6, MaxRetry: store.MaxRetry}
}

// Decide maps (session, stage output) to the next state. It never mutates its
// inputs.
func (p Policy) Decide(sess *store.Session, out StageOutput) Decision {
	if out.Err != nil {
		// Pause at the current step; the caller may re-run the same stage.
		// Capability failures are never charged against the retry budget.
		return Decision{
			NextStep:    sess.Step,
			Verdict:     VerdictError,
			RecordError: out.Err.Error(),
		}
	}

	switch out.Step {
	case store.StepExtract:
		return Decision{NextStep: store.StepClassify, Verdict: VerdictContinue}

	case store.StepClassify:
		// Confidence exactly at the threshold proceeds.
		if out.Classification.Confidence < p.ConfidenceThreshold {
			return Decision{NextStep: store.StepGenerate, Verdict: VerdictNeedsUserConfirmation}
		}
		return Decision{NextStep: store.StepGenerate, Verdict: VerdictContinue}

	case store.StepGenerate, store.StepRevise:
		return Decision{NextStep: store.StepValidate, Verdict: VerdictContinue}

	case store.StepValidate:
		return p.decideAfterValidate(sess, out.Validation)
	}

	return Decision{NextStep: sess.Step, Verdict: VerdictContinue}
}

func (p Policy) decideAfterValidate(sess *store.Session, result *store.ValidationResult) Decision {
	if len(result.Issues) == 0 {
		return Decision{NextStep: store.StepComplete, Verdict: VerdictComplete}
	}

	if sess.RetryCount < p.MaxRetry {
		return Decision{
			NextStep:       store.StepRevise,
			Verdict:        VerdictContinue,
			IncrementRetry: true,
		}
	}

	// Retry budget exhausted. Critical findings escalate to a human; lesser
	// ones terminate with the best draft and its remaining issues attached.
	if result.HasCriticalIssues() {
		return Decision{NextStep: store.StepValidate, Verdict: VerdictNeedsHumanIntervention}
	}
	return Decision{NextStep: store.StepComplete, Verdict: VerdictCompleteWithIssues}
}
