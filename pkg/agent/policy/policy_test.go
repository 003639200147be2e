package policy

import (
	"errors"
	"testing"

	"bid-agent-be/pkg/store"
)

func TestDecideExtract(t *testing.T) {
	p := Default()
	sess := store.NewSession("s1", "raw", "", "")

	d := p.Decide(sess, StageOutput{Step: store.StepExtract, Extracted: &store.ExtractedData{}})

	if d.NextStep != store.StepClassify {
		t.Errorf("NextStep = %s, want classify", d.NextStep)
	}
	if d.Verdict != VerdictContinue {
		t.Errorf("Verdict = %s, want continue", d.Verdict)
	}
}

func TestDecideClassifyConfidenceGate(t *testing.T) {
	tests := []struct {
		name        string
		confidence  float64
		wantVerdict Verdict
	}{
		{"well above threshold", 0.9, VerdictContinue},
		{"exactly at threshold proceeds", 0.6, VerdictContinue},
		{"just below threshold pauses", 0.59, VerdictNeedsUserConfirmation},
		{"far below threshold pauses", 0.1, VerdictNeedsUserConfirmation},
	}

	p := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := store.NewSession("s1", "raw", "", "")
			sess.TransitionTo(store.StepClassify)

			d := p.Decide(sess, StageOutput{
				Step:           store.StepClassify,
				Classification: &store.Classification{Confidence: tt.confidence},
			})

			if d.Verdict != tt.wantVerdict {
				t.Errorf("Verdict = %s, want %s", d.Verdict, tt.wantVerdict)
			}
			// Either way the session is positioned at generate, so the next
			// run resumes there.
			if d.NextStep != store.StepGenerate {
				t.Errorf("NextStep = %s, want generate", d.NextStep)
			}
		})
	}
}

func TestDecideAfterValidate(t *testing.T) {
	tests := []struct {
		name          string
		retryCount    int
		issues        []store.ValidationIssue
		wantStep      store.Step
		wantVerdict   Verdict
		wantIncrement bool
	}{
		{
			name:        "clean result completes",
			retryCount:  0,
			issues:      nil,
			wantStep:    store.StepComplete,
			wantVerdict: VerdictComplete,
		},
		{
			name:          "issues with budget left revise",
			retryCount:    0,
			issues:        []store.ValidationIssue{{Severity: store.SeverityHigh}},
			wantStep:      store.StepRevise,
			wantVerdict:   VerdictContinue,
			wantIncrement: true,
		},
		{
			name:          "issues on last allowed retry still revise",
			retryCount:    1,
			issues:        []store.ValidationIssue{{Severity: store.SeverityMedium}},
			wantStep:      store.StepRevise,
			wantVerdict:   VerdictContinue,
			wantIncrement: true,
		},
		{
			name:        "exhausted with critical issue escalates",
			retryCount:  2,
			issues:      []store.ValidationIssue{{Severity: store.SeverityHigh}},
			wantStep:    store.StepValidate,
			wantVerdict: VerdictNeedsHumanIntervention,
		},
		{
			name:        "exhausted with only minor issues terminates",
			retryCount:  2,
			issues:      []store.ValidationIssue{{Severity: store.SeverityMedium}, {Severity: store.SeverityLow}},
			wantStep:    store.StepComplete,
			wantVerdict: VerdictCompleteWithIssues,
		},
	}

	p := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := store.NewSession("s1", "raw", "", "")
			sess.TransitionTo(store.StepValidate)
			sess.RetryCount = tt.retryCount

			d := p.Decide(sess, StageOutput{
				Step:       store.StepValidate,
				Validation: &store.ValidationResult{Issues: tt.issues},
			})

			if d.NextStep != tt.wantStep {
				t.Errorf("NextStep = %s, want %s", d.NextStep, tt.wantStep)
			}
			if d.Verdict != tt.wantVerdict {
				t.Errorf("Verdict = %s, want %s", d.Verdict, tt.wantVerdict)
			}
			if d.IncrementRetry != tt.wantIncrement {
				t.Errorf("IncrementRetry = %v, want %v", d.IncrementRetry, tt.wantIncrement)
			}
		})
	}
}

func TestDecideCapabilityFailure(t *testing.T) {
	p := Default()
	sess := store.NewSession("s1", "raw", "", "")
	sess.TransitionTo(store.StepGenerate)

	d := p.Decide(sess, StageOutput{Step: store.StepGenerate, Err: errors.New("model unavailable")})

	if d.NextStep != store.StepGenerate {
		t.Errorf("NextStep = %s, want generate (stay put)", d.NextStep)
	}
	if d.Verdict != VerdictError {
		t.Errorf("Verdict = %s, want error", d.Verdict)
	}
	if d.IncrementRetry {
		t.Error("capability failures must not charge the retry budget")
	}
	if d.RecordError == "" {
		t.Error("RecordError should carry the diagnostic")
	}
}

func TestPausing(t *testing.T) {
	if VerdictContinue.Pausing() {
		t.Error("continue must not pause")
	}
	for _, v := range []Verdict{VerdictComplete, VerdictCompleteWithIssues, VerdictNeedsUserConfirmation, VerdictNeedsHumanIntervention, VerdictError} {
		if !v.Pausing() {
			t.Errorf("%s should pause", v)
		}
	}
}
