package model

import "time"

// RiskLevel is the classified risk band
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Severity orders bands LOW < MEDIUM < HIGH
func (l RiskLevel) Severity() int {
	switch l {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// RiskBand pairs a level with its fixed description and target response time
type RiskBand struct {
	Level        RiskLevel `json:"level"`
	Description  string    `json:"description"`
	ResponseTime string    `json:"response_time"`
}

// CategoryScore is the per-question breakdown entry
type CategoryScore struct {
	Score  int    `json:"score"`
	Max    int    `json:"max"` // the question's weight
	Answer string `json:"answer"`
}

// RiskFlag is raised when an answer exceeds 60% of its category weight
type RiskFlag struct {
	Category string   `json:"category"`
	Concern  string   `json:"concern"` // the question prompt
	Response string   `json:"response"`
	Keywords []string `json:"keywords"`
}

// Assessment is the classified scoring summary
type Assessment struct {
	TotalScore              int       `json:"total_score"`
	MaxScore                int       `json:"max_score"`
	RiskLevel               RiskLevel `json:"risk_level"`
	RiskDescription         string    `json:"risk_description"`
	RecommendedResponseTime string    `json:"recommended_response_time"`
}

// RequestFlags tells the enrichment service what to generate
type RequestFlags struct {
	GenerateSupportLinks bool   `json:"generate_support_links"`
	GenerateRiskSummary  bool   `json:"generate_risk_summary"`
	Locale               string `json:"locale"`
}

// AssessmentPayload is the canonical record handed to enrichment and the
// caller. It is built once per completed assessment and never mutated.
type AssessmentPayload struct {
	Reference         string                   `json:"reference"`
	Timestamp         string                   `json:"timestamp"` // ISO-8601, captured at build time
	Assessment        Assessment               `json:"assessment"`
	CategoryScores    map[string]CategoryScore `json:"category_scores"`
	RiskFlags         []RiskFlag               `json:"risk_flags"` // catalog order
	AdditionalContext string                   `json:"additional_context"`
	Request           RequestFlags             `json:"request"`
}

// AssessmentOutcome is what the caller gets back after completing an
// assessment: the payload plus the enrichment (or fallback) result.
type AssessmentOutcome struct {
	SessionID    string             `json:"session_id"`
	Reference    string             `json:"reference"`
	Payload      *AssessmentPayload `json:"payload"`
	Result       *EnrichmentResult  `json:"result"`
	UsedFallback bool               `json:"used_fallback"`
	CompletedAt  time.Time          `json:"completed_at"`
}
