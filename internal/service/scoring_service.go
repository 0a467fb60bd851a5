package service

import (
	"time"

	"analyseme/internal/catalog"
	"analyseme/internal/model"
)

// Band definitions. Thresholds are inclusive lower bounds: >= 60 HIGH,
// >= 35 MEDIUM, below that LOW.
const (
	highThreshold   = 60
	mediumThreshold = 35
)

var (
	bandHigh   = model.RiskBand{Level: model.RiskHigh, Description: "Urgent intervention recommended", ResponseTime: "Within 24 hours"}
	bandMedium = model.RiskBand{Level: model.RiskMedium, Description: "Priority support pathway", ResponseTime: "Within 3 working days"}
	bandLow    = model.RiskBand{Level: model.RiskLow, Description: "Standard support pathway", ResponseTime: "Within 10 working days"}
	bandCrisis = model.RiskBand{Level: model.RiskHigh, Description: "Crisis indicators present – urgent intervention recommended", ResponseTime: "Within 24 hours"}
)

// ScoringService folds an answer set into a score, breakdown and risk flags,
// classifies the result, and builds the canonical assessment payload. It is
// stateless apart from the immutable catalog and safe for concurrent use.
type ScoringService struct {
	catalog *catalog.Catalog
}

// NewScoringService creates a new scoring service over a validated catalog
func NewScoringService(c *catalog.Catalog) *ScoringService {
	return &ScoringService{catalog: c}
}

// Catalog returns the question catalog
func (s *ScoringService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Score folds answers into the total score, per-category breakdown and risk
// flags. The catalog's order fixes the risk-flag order; it has no effect on
// the total. Answers for unknown questions or with unknown labels count as
// unanswered and contribute nothing.
func (s *ScoringService) Score(answers model.AnswerSet) (int, map[string]model.CategoryScore, []model.RiskFlag) {
	total := 0
	categoryScores := make(map[string]model.CategoryScore)
	riskFlags := []model.RiskFlag{}

	for _, q := range s.catalog.Questions() {
		label, ok := answers[q.ID]
		if !ok {
			continue
		}
		opt, ok := q.Option(label)
		if !ok {
			continue
		}

		categoryScores[q.ID] = model.CategoryScore{
			Score:  opt.Score,
			Max:    q.Weight,
			Answer: opt.Label,
		}
		total += opt.Score

		// Flag answers above 60% of the category weight (score/weight > 3/5)
		if opt.Score*5 > q.Weight*3 {
			riskFlags = append(riskFlags, model.RiskFlag{
				Category: q.ID,
				Concern:  q.Prompt,
				Response: opt.Label,
				Keywords: q.RiskKeywords,
			})
		}
	}

	return total, categoryScores, riskFlags
}

// Classify maps a total score to its risk band, then applies the crisis
// override: any selected option carrying the Crisis flag forces HIGH. A band
// that is already HIGH keeps its base description.
func (s *ScoringService) Classify(total int, answers model.AnswerSet) model.RiskBand {
	band := bandForScore(total)

	if band.Level != model.RiskHigh && s.hasCrisisAnswer(answers) {
		return bandCrisis
	}

	return band
}

// BuildPayload composes scoring and classification into the canonical
// assessment payload, stamped with the caller's reference and the build time.
func (s *ScoringService) BuildPayload(answers model.AnswerSet, additionalContext, reference string) *model.AssessmentPayload {
	total, categoryScores, riskFlags := s.Score(answers)
	band := s.Classify(total, answers)

	return &model.AssessmentPayload{
		Reference: reference,
		Timestamp: time.Now().Format(time.RFC3339),
		Assessment: model.Assessment{
			TotalScore:              total,
			MaxScore:                catalog.TotalWeight,
			RiskLevel:               band.Level,
			RiskDescription:         band.Description,
			RecommendedResponseTime: band.ResponseTime,
		},
		CategoryScores:    categoryScores,
		RiskFlags:         riskFlags,
		AdditionalContext: additionalContext,
		Request: model.RequestFlags{
			GenerateSupportLinks: true,
			GenerateRiskSummary:  true,
			Locale:               "en-GB",
		},
	}
}

func (s *ScoringService) hasCrisisAnswer(answers model.AnswerSet) bool {
	for _, q := range s.catalog.Questions() {
		label, ok := answers[q.ID]
		if !ok {
			continue
		}
		if opt, ok := q.Option(label); ok && opt.Crisis {
			return true
		}
	}
	return false
}

func bandForScore(total int) model.RiskBand {
	switch {
	case total >= highThreshold:
		return bandHigh
	case total >= mediumThreshold:
		return bandMedium
	default:
		return bandLow
	}
}
