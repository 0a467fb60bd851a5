package service

import (
	"fmt"
	"strings"

	"analyseme/internal/model"
)

// FallbackResponse deterministically synthesizes an enrichment result from
// the payload alone. It is pure and total: no I/O, no failure modes. Used
// whenever the remote enrichment call fails for any reason.
func FallbackResponse(payload *model.AssessmentPayload) *model.EnrichmentResult {
	riskLevel := payload.Assessment.RiskLevel

	var emergencyNote *string
	if riskLevel == model.RiskHigh {
		note := "If you need immediate help tonight, call Birmingham Council on 0121 303 7410"
		emergencyNote = &note
	}

	keyConcerns := []string{fmt.Sprintf("Score: %d/100", payload.Assessment.TotalScore)}
	for _, flag := range payload.RiskFlags {
		keyConcerns = append(keyConcerns, titleize(flag.Category))
	}

	return &model.EnrichmentResult{
		UserResponse: model.UserResponse{
			Greeting: "Thank you for completing this assessment. Based on your responses, we've identified some services that may be able to help you.",
			SupportLinks: []model.SupportLink{
				{
					Name:        "Birmingham Council Homelessness Line",
					URL:         "https://www.birmingham.gov.uk/homeless",
					Phone:       "0121 303 7410",
					Description: "24/7 housing advice and emergency support for Birmingham residents",
					Priority:    "high",
				},
				{
					Name:        "Shelter Birmingham",
					URL:         "https://england.shelter.org.uk/get_help/local_services/birmingham",
					Phone:       "0808 800 4444",
					Description: "Free expert housing advice and support",
					Priority:    "high",
				},
				{
					Name:        "Citizens Advice Birmingham",
					URL:         "https://www.citizensadvice.org.uk/local/birmingham/",
					Phone:       "0808 278 7973",
					Description: "Free advice on benefits, debt, and housing issues",
					Priority:    "medium",
				},
			},
			NextSteps:     fmt.Sprintf("Your reference number is %s. A housing support officer will review your case and be in touch within the recommended timeframe.", payload.Reference),
			EmergencyNote: emergencyNote,
		},
		OfficerSummary: model.OfficerSummary{
			RiskLevel:           string(riskLevel),
			KeyConcerns:         keyConcerns,
			RecommendedActions:  []string{"Review full assessment", "Contact citizen within recommended timeframe"},
			ReferralSuggestions: []string{"Based on risk flags - see assessment details"},
			Notes:               "Automated fallback response - LLM analysis was unavailable. Manual review recommended.",
		},
	}
}

// titleize turns a category id like "financial_pressure" into "Financial Pressure"
func titleize(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
