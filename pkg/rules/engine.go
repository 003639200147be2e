package rules

import (
	"fmt"
	"strings"

	"bid-agent-be/pkg/store"
)

// Contract methods recognized by the national contract act rules.
const (
	MethodQualificationReview = "qualification_review"
	MethodLowestPrice         = "lowest_price"
	MethodNegotiatedContract  = "negotiated_contract"
)

// Procurement categories used for threshold lookup.
const (
	ProcurementConstruction = "construction"
	ProcurementService      = "service"
	ProcurementGoods        = "goods"
)

// Qualification review minimums per Enforcement Decree Art. 42, in KRW.
var qualificationThresholds = map[string]float64{
	ProcurementConstruction: 300_000_000,
	ProcurementService:      200_000_000,
	ProcurementGoods:        500_000_000,
}

// annexByMethod maps a contract method to the statute annex the announcement
// must cite.
var annexByMethod = map[string]string{
	MethodQualificationReview: "Enforcement Decree Art. 42 (qualification review)",
	MethodLowestPrice:         "National Contract Act Art. 10 (competitive bidding)",
	MethodNegotiatedContract:  "National Contract Act Art. 26 (negotiated contract)",
}

type score struct {
	confidence float64
	reason     string
}

// Engine scores contract methods for an extracted procurement plan. All rules
// are deterministic; the engine never calls out of process.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Classify evaluates every rule and returns the best-scoring contract method
// with alternatives at confidence 0.3 or above.
func (e *Engine) Classify(data *store.ExtractedData) *store.Classification {
	amount := data.Amount()

	scores := map[string]score{
		MethodQualificationReview: e.scoreQualificationReview(amount, data),
		MethodLowestPrice:         e.scoreLowestPrice(amount, data),
		MethodNegotiatedContract:  e.scoreNegotiation(data),
	}

	// Ties go to the later rule: negotiation and lowest price only score high
	// on explicit signals, so on equal confidence the more specific rule wins.
	best := MethodQualificationReview
	for _, method := range KnownMethods() {
		if scores[method].confidence >= scores[best].confidence {
			best = method
		}
	}

	var alternatives []string
	for _, method := range KnownMethods() {
		if method != best && scores[method].confidence >= 0.3 {
			alternatives = append(alternatives, method)
		}
	}

	cls := &store.Classification{
		RecommendedType:  best,
		Confidence:       scores[best].confidence,
		Reason:           scores[best].reason,
		AlternativeTypes: alternatives,
	}
	ApplyGuardedFields(cls, data)
	return cls
}

// ApplyGuardedFields fills the rule-engine-authoritative projection for a
// classification: the contract method, the annex it relies on, and the SME
// restriction carried over from the plan. These fields are write-once; callers
// must not overwrite them afterwards.
func ApplyGuardedFields(cls *store.Classification, data *store.ExtractedData) {
	cls.ContractMethod = cls.RecommendedType
	cls.AppliedAnnex = annexByMethod[cls.RecommendedType]
	cls.SMERestriction = "none"
	if data != nil && data.Qualification != nil && data.Qualification.SMERestriction != "" {
		cls.SMERestriction = data.Qualification.SMERestriction
	}
}

func (e *Engine) scoreQualificationReview(amount float64, data *store.ExtractedData) score {
	threshold, ok := qualificationThresholds[data.ProcurementType]
	if !ok {
		return score{0.0, "procurement category unclear"}
	}

	var s score
	switch {
	case amount >= threshold:
		s = score{0.9, fmt.Sprintf("%s budget %.0f KRW meets the qualification review floor of %.0f KRW", data.ProcurementType, amount, threshold)}
	case amount >= threshold*0.7:
		s = score{0.6, fmt.Sprintf("budget %.0f KRW is close to the qualification review floor", amount)}
	default:
		s = score{0.2, "budget below the qualification review floor"}
	}

	if hasTechnicalRequirements(data) {
		s.confidence = min(s.confidence+0.1, 1.0)
		s.reason += " (technical requirements present)"
	}
	return s
}

func (e *Engine) scoreLowestPrice(amount float64, data *store.ExtractedData) score {
	threshold, ok := qualificationThresholds[data.ProcurementType]
	if !ok {
		return score{0.0, "procurement category unclear"}
	}

	var s score
	if amount < threshold {
		if data.ProcurementType == ProcurementGoods {
			s = score{0.85, fmt.Sprintf("goods purchase of %.0f KRW fits lowest-price award", amount)}
		} else {
			s = score{0.7, fmt.Sprintf("budget %.0f KRW is below the qualification review floor", amount)}
		}
	} else {
		s = score{0.3, "budget is high enough that qualification review is preferred"}
	}

	if data.ProcurementType == ProcurementGoods && !hasTechnicalRequirements(data) {
		s.confidence = min(s.confidence+0.1, 1.0)
		s.reason += " (simple goods)"
	}
	return s
}

func (e *Engine) scoreNegotiation(data *store.ExtractedData) score {
	s := score{0.1, "competitive bidding preferred for ordinary procurement"}

	if data.Qualification != nil {
		req := data.Qualification.TechnicalRequirements
		if strings.Contains(req, "specialized") || strings.Contains(req, "proprietary") {
			s = score{0.7, "specialized technical requirements present"}
		}
	}

	if data.ProcurementType == ProcurementService {
		notes := data.QualificationNotes
		if strings.Contains(notes, "specialized") || strings.Contains(notes, "expert") {
			if s.confidence < 0.6 {
				s = score{0.6, "professional service may warrant a negotiated contract"}
			}
		}
	}

	if data.DeliveryDeadlineDays > 0 && data.DeliveryDeadlineDays < 30 {
		if s.confidence < 0.5 {
			s.confidence = 0.5
		}
		s.reason += " (urgent delivery)"
	}
	return s
}

func hasTechnicalRequirements(data *store.ExtractedData) bool {
	return data.Qualification != nil && data.Qualification.TechnicalRequirements != ""
}

// KnownMethods lists every contract method the engine can recommend, in rule
// order.
func KnownMethods() []string {
	return []string{MethodQualificationReview, MethodLowestPrice, MethodNegotiatedContract}
}
