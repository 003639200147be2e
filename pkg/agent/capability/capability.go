// Package capability defines the four external reasoning ports the workflow
// engine drives. Each is a pure request/response boundary; latency and
// failure belong to the implementation behind it.
package capability

import (
	"context"

	"bid-agent-be/pkg/store"
	"bid-agent-be/pkg/template"
)

// GenerationHints carries the optional steering inputs for a generate call.
type GenerationHints struct {
	// UserPrompt is free-text direction from the caller.
	UserPrompt string

	// RevisionSuggestions folds validation findings back into generation
	// during a revise cycle.
	RevisionSuggestions []store.ValidationIssue

	// DerivedFields are schedule/number values computed outside the model
	// (announcement date, deadlines, announcement number).
	DerivedFields map[string]string
}

// GenerateRequest bundles everything the generate stage may read. Guarded is
// the rule-engine-authoritative projection; the generator renders it verbatim
// and the engine re-checks the output against it afterwards.
type GenerateRequest struct {
	Data     *store.ExtractedData
	Guarded  template.GuardedFields
	Template *template.Document
	Hints    GenerationHints
}

// Extractor pulls structured fields out of a procurement plan text.
type Extractor interface {
	Extract(ctx context.Context, rawText string) (*store.ExtractedData, error)
}

// Classifier recommends a contract method for the extracted plan.
type Classifier interface {
	Classify(ctx context.Context, data *store.ExtractedData) (*store.Classification, error)
}

// Generator drafts an announcement from the template and extracted data.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Validator checks a draft against statute references.
type Validator interface {
	Validate(ctx context.Context, document, lawReferences string) (*store.ValidationResult, error)
}

// Provider groups all four stage ports.
type Provider interface {
	Extractor
	Classifier
	Generator
	Validator
}
