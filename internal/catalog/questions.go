package catalog

import "analyseme/internal/model"

// Questions returns the standard ten-question assessment. Options are ordered
// from least to most severe. The Crisis flag marks the answers that force an
// urgent response regardless of the numeric total.
func Questions() []model.Question {
	return []model.Question{
		{
			ID:     "housing_stability",
			Prompt: "Can you tell me a bit about how secure or stable your current living situation feels?",
			Weight: 20,
			Options: []model.Option{
				{Label: "Very secure - I have stable, long-term housing", Score: 0},
				{Label: "Fairly secure - but some uncertainty", Score: 4},
				{Label: "Uncertain - my situation could change soon", Score: 10},
				{Label: "Unstable - I may lose my home in the coming weeks", Score: 16, Crisis: true},
				{Label: "Crisis - I am homeless or about to be", Score: 20, Crisis: true},
			},
			RiskKeywords: []string{"eviction", "homeless", "rough sleeping", "temporary", "sofa surfing", "notice"},
		},
		{
			ID:     "financial_pressure",
			Prompt: "How are finances affecting your day-to-day life — do money pressures feel overwhelming right now?",
			Weight: 25,
			Options: []model.Option{
				{Label: "Finances are comfortable - no concerns", Score: 0},
				{Label: "Managing okay - occasional tight moments", Score: 5},
				{Label: "Struggling - frequently worried about money", Score: 12},
				{Label: "Severe pressure - behind on essential bills", Score: 19},
				{Label: "Crisis - cannot afford basic needs, facing debt action", Score: 25},
			},
			RiskKeywords: []string{"debt", "arrears", "benefits", "universal credit", "income", "unemployed", "bills"},
		},
		{
			ID:     "health_work_impact",
			Prompt: "Do you have any health conditions or disabilities that affect your ability to work or could put pressure on your finances?",
			Weight: 15,
			Options: []model.Option{
				{Label: "No - my health doesn't affect my ability to work", Score: 0},
				{Label: "Minor impact - I can work with some adjustments", Score: 3},
				{Label: "Moderate impact - limits the work I can do", Score: 7},
				{Label: "Significant impact - unable to work full-time", Score: 11},
				{Label: "Severe - unable to work due to health/disability", Score: 15},
			},
			RiskKeywords: []string{"disability", "unable to work", "PIP", "ESA", "long-term sick", "chronic illness", "limited capability"},
		},
		{
			ID:     "mental_health",
			Prompt: "Would you like to talk about your mental health or emotional wellbeing?",
			Weight: 10,
			Options: []model.Option{
				{Label: "I'm doing well emotionally", Score: 0},
				{Label: "Some stress but coping okay", Score: 2},
				{Label: "Struggling - anxiety, low mood affecting me", Score: 5},
				{Label: "Significant difficulties - impacting daily life", Score: 7},
				{Label: "In crisis - need urgent mental health support", Score: 10, Crisis: true},
			},
			RiskKeywords: []string{"mental health", "depression", "anxiety", "stress", "suicidal", "crisis"},
		},
		{
			ID:     "abuse_safety",
			Prompt: "Have you experienced situations, like abuse or violence, that impact your safety or stability?",
			Weight: 10,
			Options: []model.Option{
				{Label: "No - I feel safe", Score: 0},
				{Label: "Past experiences - but currently safe", Score: 3},
				{Label: "Some concerns about safety", Score: 6},
				{Label: "Currently experiencing abuse or control", Score: 8},
				{Label: "In immediate danger - need to leave", Score: 10, Crisis: true},
			},
			RiskKeywords: []string{"domestic abuse", "violence", "fleeing", "refuge", "controlling", "fear"},
		},
		{
			ID:     "care_leaver",
			Prompt: "Are you preparing to leave care services, or have you recently transitioned out of them?",
			Weight: 5,
			Options: []model.Option{
				{Label: "This doesn't apply to me", Score: 0},
				{Label: "Left care several years ago", Score: 1},
				{Label: "Left care in the past 2-3 years", Score: 2},
				{Label: "Recently left care (within 12 months)", Score: 4},
				{Label: "Currently preparing to leave care", Score: 5},
			},
			RiskKeywords: []string{"care leaver", "foster care", "looked after", "leaving care", "personal adviser"},
		},
		{
			ID:     "institutional_discharge",
			Prompt: "Have you recently left prison or another institution, and are you adjusting to life outside?",
			Weight: 5,
			Options: []model.Option{
				{Label: "This doesn't apply to me", Score: 0},
				{Label: "Left an institution over a year ago", Score: 1},
				{Label: "Left within the past year", Score: 2},
				{Label: "Recently released (past 3 months)", Score: 4},
				{Label: "Just released / about to be released", Score: 5},
			},
			RiskKeywords: []string{"prison", "hospital discharge", "rehabilitation", "probation", "resettlement"},
		},
		{
			ID:     "benefits_access",
			Prompt: "Do you feel confident about the benefits or entitlements you can access, or would support help?",
			Weight: 5,
			Options: []model.Option{
				{Label: "Yes - I receive everything I'm entitled to", Score: 0},
				{Label: "Mostly - but might be missing something", Score: 1},
				{Label: "Unsure - I don't know what I can claim", Score: 3},
				{Label: "Struggling to access benefits I need", Score: 4},
				{Label: "Benefits stopped or refused - need urgent help", Score: 5},
			},
			RiskKeywords: []string{"benefits", "universal credit", "PIP", "housing benefit", "sanctions", "appeal"},
		},
		{
			ID:     "support_network",
			Prompt: "Who do you feel you can rely on right now — family, friends, or community networks?",
			Weight: 3,
			Options: []model.Option{
				{Label: "Strong support network - family and friends", Score: 0},
				{Label: "Some support available", Score: 1},
				{Label: "Limited support - one or two people", Score: 2},
				{Label: "Very little support - mostly alone", Score: 2},
				{Label: "No support - completely isolated", Score: 3},
			},
			RiskKeywords: []string{"isolated", "alone", "no family", "estranged", "breakdown"},
		},
		{
			ID:     "service_interest",
			Prompt: "Would it be useful if I showed you local and national services that match your needs?",
			Weight: 2,
			Options: []model.Option{
				{Label: "Not needed right now - just exploring", Score: 0},
				{Label: "Maybe - would like to know what's available", Score: 1},
				{Label: "Yes - I'd like some guidance", Score: 1},
				{Label: "Definitely - I need help finding services", Score: 2},
				{Label: "Urgent - I need immediate support connections", Score: 2},
			},
			RiskKeywords: []string{},
		},
	}
}
