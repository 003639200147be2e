package template

import (
	"fmt"
	"regexp"
	"sort"

	"bid-agent-be/pkg/rules"
	"bid-agent-be/pkg/store"
)

// Document is a selectable announcement template.
type Document struct {
	ID           string   `json:"template_id"`
	Method       string   `json:"template_type"`
	Content      string   `json:"content"`
	Placeholders []string `json:"placeholders"`
}

// GuardedFields is the read-only projection handed to the generate stage.
// Generation may render these values but must never change them; the engine
// re-checks the output against them.
type GuardedFields struct {
	ContractMethod string `json:"contract_method"`
	AppliedAnnex   string `json:"applied_annex"`
	SMERestriction string `json:"sme_restriction"`
}

// GuardedFrom projects the guarded fields out of an authoritative
// classification.
func GuardedFrom(cls *store.Classification) GuardedFields {
	return GuardedFields{
		ContractMethod: cls.ContractMethod,
		AppliedAnnex:   cls.AppliedAnnex,
		SMERestriction: cls.SMERestriction,
	}
}

// Provider selects announcement templates by contract method.
type Provider struct {
	templates map[string]string
}

func NewProvider() *Provider {
	return &Provider{
		templates: map[string]string{
			rules.MethodQualificationReview: qualificationReviewTemplate,
			rules.MethodLowestPrice:         lowestPriceTemplate,
			rules.MethodNegotiatedContract:  negotiatedContractTemplate,
		},
	}
}

// Select returns the template matching a classification's authoritative
// contract method.
func (p *Provider) Select(cls *store.Classification) (*Document, error) {
	return p.SelectByMethod(cls.ContractMethod)
}

// SelectByMethod returns the template for a contract method directly.
func (p *Provider) SelectByMethod(method string) (*Document, error) {
	content, ok := p.templates[method]
	if !ok {
		return nil, fmt.Errorf("unknown template type: %s", method)
	}
	return &Document{
		ID:           "template_" + method,
		Method:       method,
		Content:      content,
		Placeholders: extractPlaceholders(content),
	}, nil
}

// List returns every available contract method with a template.
func (p *Provider) List() []string {
	methods := make([]string, 0, len(p.templates))
	for m := range p.templates {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

func extractPlaceholders(content string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	sort.Strings(out)
	return out
}

const qualificationReviewTemplate = `# {project_name}

## Bid Announcement (Qualification Review)

### 1. Project Overview
- Project: {project_name}
- Estimated budget: {estimated_amount} KRW (VAT included)
- Contract period: {contract_period}

### 2. Award Method
- Award method: qualification review under {applied_annex}
- Bidders passing the qualification score threshold are evaluated on price.

### 3. Eligibility
- SME restriction: {sme_restriction}
{qualification_notes}

### 4. Required Documents
- Business registration certificate
- Technical proposal
- Price quotation
- Qualification review self-assessment

### 5. Schedule
- Announcement date: {announcement_date}
- Bid deadline: {bid_deadline}
- Bid opening: {opening_date}
- Award decision: {award_date}

### 6. Contact
Procurement office of the ordering agency ({announcement_number})
`

const lowestPriceTemplate = `# {project_name}

## Bid Announcement (Lowest Price Award)

### 1. Project Overview
- Project: {project_name}
- Estimated budget: {estimated_amount} KRW (VAT included)
- Contract period: {contract_period}

### 2. Award Method
- Award method: lowest price at or below the planned price, per {applied_annex}

### 3. Eligibility
- SME restriction: {sme_restriction}
{qualification_notes}

### 4. Required Documents
- Business registration certificate
- Price quotation

### 5. Schedule
- Announcement date: {announcement_date}
- Bid deadline: {bid_deadline}
- Bid opening: {opening_date}

### 6. Contact
Procurement office of the ordering agency ({announcement_number})
`

const negotiatedContractTemplate = `# {project_name}

## Bid Announcement (Negotiated Contract)

### 1. Project Overview
- Project: {project_name}
- Estimated budget: {estimated_amount} KRW (VAT included)
- Contract period: {contract_period}

### 2. Award Method
- Award method: negotiated contract under {applied_annex}
- Proposals are scored on technical merit and price.

### 3. Eligibility
- SME restriction: {sme_restriction}
{qualification_notes}

### 4. Required Documents
- Business registration certificate
- Technical and price proposal

### 5. Schedule
- Announcement date: {announcement_date}
- Proposal deadline: {bid_deadline}
- Evaluation: {opening_date}
- Award decision: {award_date}

### 6. Contact
Procurement office of the ordering agency ({announcement_number})
`
