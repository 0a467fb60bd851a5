package model

// SupportLink is one service the citizen is pointed at
type SupportLink struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Phone       string `json:"phone,omitempty"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // "high", "medium", "low"
}

// UserResponse is the citizen-facing half of an enrichment result
type UserResponse struct {
	Greeting      string        `json:"greeting"`
	SupportLinks  []SupportLink `json:"support_links"`
	NextSteps     string        `json:"next_steps"`
	EmergencyNote *string       `json:"emergency_note"`
}

// OfficerSummary is the officer-facing half of an enrichment result
type OfficerSummary struct {
	RiskLevel           string   `json:"risk_level"`
	KeyConcerns         []string `json:"key_concerns"`
	RecommendedActions  []string `json:"recommended_actions"`
	ReferralSuggestions []string `json:"referral_suggestions"`
	Notes               string   `json:"notes"`
}

// EnrichmentResult is the two-part reply schema shared by the remote model
// and the fallback generator
type EnrichmentResult struct {
	UserResponse   UserResponse   `json:"user_response"`
	OfficerSummary OfficerSummary `json:"officer_summary"`
}
