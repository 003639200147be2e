package stages

// Stage prompt templates. Each instructs the model to answer with bare JSON
// matching the stage schema; anything else is rejected by decodeStrict.

const extractionPromptTemplate = `Extract the key procurement facts from the plan below.

Plan text:
%s

Fields to extract:
- project_name: the project title
- estimated_amount: estimated budget as a number in KRW
- total_budget_vat: VAT-inclusive total as a number in KRW, 0 if absent
- contract_period: the contract period
- delivery_deadline_days: delivery deadline in days, 0 if absent
- procurement_type: one of "construction", "service", "goods"
- qualification_notes: eligibility requirements and remarks
- determination_method: suggested award method, if the plan names one

Respond with a single JSON object containing exactly these fields and no
commentary.`

const classificationPromptTemplate = `Recommend the most suitable announcement type for this procurement.

Extracted facts:
%s

Classification guidance (National Contract Act):
- qualification_review: above the prescribed amount, technical capability matters
- lowest_price: ordinary goods, simple construction
- negotiated_contract: specialized services, urgency

Respond with a single JSON object:
{
  "recommended_type": "qualification_review" | "lowest_price" | "negotiated_contract",
  "confidence": a number between 0.0 and 1.0,
  "reason": "why",
  "alternative_types": ["..."]
}

Be honest about low confidence; this is a recommendation, not a ruling.`

const generationPromptTemplate = `Draft a bid announcement by filling the template below with the extracted facts.

Template:
%s

Facts:
%s

Fixed values you must render exactly as given and never change:
- award method: %s
- statute citation: %s
- SME restriction: %s

Schedule and numbering values:
%s
%s
Requirements:
1. Keep the template structure.
2. Replace every {placeholder} with its value.
3. Keep the tone of a public-sector document.

Output the finished announcement only.`

const revisionPromptAddendum = `
Findings from the statutory review, to be resolved in this draft
(handle high severity first, keep the overall context):
%s
`

const validationPromptTemplate = `Review the announcement below against the statute references.

Announcement:
%s

Statute references:
%s

Check for:
1. Agreement between the announcement and the cited provisions
2. Exact phrasing (e.g. "at or below the planned price", not "below")
3. Missing mandatory sections
4. Mismatches caused by amended provisions

Respond with a single JSON object:
{
  "is_valid": true/false,
  "issues": [
    {"law": "...", "section": "...", "issue_type": "...",
     "current_text": "...", "suggestion": "...", "severity": "low|medium|high"}
  ],
  "checked_laws": ["..."]
}

Suggest corrections only; never render a legal ruling. If nothing is wrong,
return is_valid true with an empty issues list.`
