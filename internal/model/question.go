package model

// Option is one selectable answer for a question, mapped to a point value.
// Crisis marks answers that force the HIGH risk band regardless of the total
// score. The flag lives on the option so that rewording a label cannot
// silently disconnect the override.
type Option struct {
	Label  string `json:"label"`
	Score  int    `json:"score"`
	Crisis bool   `json:"crisis,omitempty"`
}

// Question is one scored category of the assessment
type Question struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Weight       int      `json:"weight"` // maximum contribution to the total score
	Options      []Option `json:"options"`
	RiskKeywords []string `json:"risk_keywords"` // advisory metadata, never scored against
}

// Option returns the option matching the given label, if any
func (q *Question) Option(label string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Label == label {
			return opt, true
		}
	}
	return Option{}, false
}

// AnswerSet maps question id to the selected option label. Unknown ids or
// labels are treated as unanswered, not as errors.
type AnswerSet map[string]string
