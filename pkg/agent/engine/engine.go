// Package engine drives the drafting state machine: it invokes the capability
// port for the session's current step, feeds the result to the decision
// policy, persists the computed mutation, and loops until a pausing or
// terminal verdict.
package engine

import (
	"context"
	"time"

	"bid-agent-be/pkg/agent/capability"
	"bid-agent-be/pkg/agent/guard"
	"bid-agent-be/pkg/agent/policy"
	"bid-agent-be/pkg/law"
	"bid-agent-be/pkg/store"
	"bid-agent-be/pkg/template"
)

// EventPublisher receives workflow progress notifications. Implementations
// must not block the run loop.
type EventPublisher interface {
	StageCompleted(sessionID string, step store.Step, verdict policy.Verdict)
	SessionCompleted(sess *store.Session, verdict policy.Verdict)
}

// Options carries the per-run overrides.
type Options struct {
	// TemplateContent replaces the provider-selected template when set.
	TemplateContent string

	// LawReferences replaces the embedded statute excerpts when set.
	LawReferences string

	// UserPrompt is free-text generation direction.
	UserPrompt string
}

// RunResult is the discriminated outcome of one Run call.
type RunResult struct {
	Verdict        policy.Verdict
	Step           store.Step
	RetryCount     int
	ExtractedData  *store.ExtractedData
	Classification *store.Classification
	Document       string
	Issues         []store.ValidationIssue
	LastError      string
}

// Engine owns no business branching of its own; all decisions come from the
// policy, all state from the store.
type Engine struct {
	sessions  store.SessionStore
	provider  capability.Provider
	templates *template.Provider
	policy    policy.Policy
	publisher EventPublisher
}

func New(sessions store.SessionStore, provider capability.Provider, templates *template.Provider, pol policy.Policy, publisher EventPublisher) *Engine {
	return &Engine{
		sessions:  sessions,
		provider:  provider,
		templates: templates,
		policy:    pol,
		publisher: publisher,
	}
}

// Run advances the session until the policy pauses or completes it. The
// session is locked for the whole call; concurrent runs on other sessions are
// unaffected. Each loop iteration persists either the full policy-computed
// mutation or nothing.
func (e *Engine) Run(ctx context.Context, sessionID string, opts Options) (*RunResult, error) {
	if !e.sessions.Exists(sessionID) {
		return nil, store.ErrNotFound
	}
	unlock := e.sessions.Lock(sessionID)
	defer unlock()

	sess, err := e.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	lawRefs := opts.LawReferences
	if lawRefs == "" {
		lawRefs = law.DefaultReferences
	}

	for {
		if sess.Step == store.StepComplete {
			return e.result(sess, completedVerdict(sess)), nil
		}

		if err := ctx.Err(); err != nil {
			// Timeout or cancellation between stages: the session stays at
			// its last persisted step with the diagnostic recorded.
			next := sess.Clone()
			next.AddError(err.Error())
			if saveErr := e.sessions.Save(next); saveErr != nil {
				return nil, saveErr
			}
			return e.result(next, policy.VerdictError), nil
		}

		out := e.invokeStage(ctx, sess, opts, lawRefs)
		decision := e.policy.Decide(sess, out)

		next := sess.Clone()
		applyDecision(next, out, decision)
		if err := e.sessions.Save(next); err != nil {
			return nil, err
		}
		sess = next

		if e.publisher != nil {
			e.publisher.StageCompleted(sess.ID, out.Step, decision.Verdict)
			if decision.Verdict == policy.VerdictComplete || decision.Verdict == policy.VerdictCompleteWithIssues {
				e.publisher.SessionCompleted(sess, decision.Verdict)
			}
		}

		if decision.Verdict.Pausing() {
			return e.result(sess, decision.Verdict), nil
		}
	}
}

// invokeStage calls the capability port matching the current step. The revise
// step re-enters generation with the prior findings folded into the hints.
func (e *Engine) invokeStage(ctx context.Context, sess *store.Session, opts Options, lawRefs string) policy.StageOutput {
	switch sess.Step {
	case store.StepUpload, store.StepExtract:
		data, err := e.provider.Extract(ctx, sess.RawText)
		return policy.StageOutput{Step: store.StepExtract, Extracted: data, Err: err}

	case store.StepClassify:
		cls, err := e.provider.Classify(ctx, sess.ExtractedData)
		return policy.StageOutput{Step: store.StepClassify, Classification: cls, Err: err}

	case store.StepGenerate, store.StepRevise:
		step := sess.Step
		req, err := e.buildGenerateRequest(sess, opts)
		if err != nil {
			return policy.StageOutput{Step: step, Err: err}
		}
		doc, err := e.provider.Generate(ctx, req)
		return policy.StageOutput{Step: step, Document: doc, Err: err}

	case store.StepValidate:
		result, err := e.provider.Validate(ctx, sess.GeneratedDocument, lawRefs)
		if err == nil {
			// Guarded fields are re-checked mechanically; divergence joins
			// the findings and flows through the normal revise policy.
			guardIssues := guard.Check(template.GuardedFrom(sess.Classification), sess.GeneratedDocument)
			result.Issues = append(result.Issues, guardIssues...)
			result.IsValid = len(result.Issues) == 0
		}
		return policy.StageOutput{Step: store.StepValidate, Validation: result, Err: err}
	}

	return policy.StageOutput{Step: sess.Step}
}

func (e *Engine) buildGenerateRequest(sess *store.Session, opts Options) (capability.GenerateRequest, error) {
	var doc *template.Document
	if opts.TemplateContent != "" {
		doc = &template.Document{
			ID:      "template_custom",
			Method:  sess.Classification.ContractMethod,
			Content: opts.TemplateContent,
		}
	} else if sess.SelectedTemplateID != "" {
		selected, err := e.templates.SelectByMethod(sess.SelectedTemplateID)
		if err != nil {
			return capability.GenerateRequest{}, err
		}
		doc = selected
	} else {
		selected, err := e.templates.Select(sess.Classification)
		if err != nil {
			return capability.GenerateRequest{}, err
		}
		doc = selected
	}

	hints := capability.GenerationHints{
		UserPrompt:    opts.UserPrompt,
		DerivedFields: template.DerivedFields(time.Now()),
	}
	if sess.Step == store.StepRevise {
		hints.RevisionSuggestions = sess.ValidationIssues
	}

	return capability.GenerateRequest{
		Data:     sess.ExtractedData,
		Guarded:  template.GuardedFrom(sess.Classification),
		Template: doc,
		Hints:    hints,
	}, nil
}

// applyDecision writes the stage payload and the policy bookkeeping onto the
// session copy that will be persisted.
func applyDecision(sess *store.Session, out policy.StageOutput, decision policy.Decision) {
	if decision.RecordError != "" {
		sess.AddError(decision.RecordError)
		return
	}

	sess.ClearError()
	switch out.Step {
	case store.StepExtract:
		sess.ExtractedData = out.Extracted
	case store.StepClassify:
		sess.Classification = out.Classification
	case store.StepGenerate, store.StepRevise:
		sess.GeneratedDocument = out.Document
	case store.StepValidate:
		sess.ValidationIssues = out.Validation.Issues
	}

	if decision.IncrementRetry {
		sess.IncrementRetry()
	}
	sess.TransitionTo(decision.NextStep)
}

// completedVerdict restores the terminal sub-status of a finished session:
// findings that survived the retry budget keep the run tagged as revised with
// remaining issues on every repeat call.
func completedVerdict(sess *store.Session) policy.Verdict {
	if len(sess.ValidationIssues) > 0 {
		return policy.VerdictCompleteWithIssues
	}
	return policy.VerdictComplete
}

func (e *Engine) result(sess *store.Session, verdict policy.Verdict) *RunResult {
	return &RunResult{
		Verdict:        verdict,
		Step:           sess.Step,
		RetryCount:     sess.RetryCount,
		ExtractedData:  sess.ExtractedData,
		Classification: sess.Classification,
		Document:       sess.GeneratedDocument,
		Issues:         sess.ValidationIssues,
		LastError:      sess.LastError,
	}
}
