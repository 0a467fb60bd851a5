// Package catalog holds the fixed assessment questionnaire. The ten question
// weights sum to exactly 100 so the total score is always 0-100; that
// invariant is checked at construction and a violation prevents startup.
package catalog

import (
	"fmt"

	"analyseme/internal/model"
)

// TotalWeight is the required sum of all question weights
const TotalWeight = 100

// ConfigurationError reports an invalid catalog. It is fatal: a catalog that
// fails validation must never serve scoring requests.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "catalog configuration: " + e.Reason
}

// Catalog is the validated, ordered question set
type Catalog struct {
	questions []model.Question
	byID      map[string]int
}

// New validates the given questions and returns a catalog
func New(questions []model.Question) (*Catalog, error) {
	if err := Validate(questions); err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(questions))
	for i, q := range questions {
		byID[q.ID] = i
	}

	return &Catalog{questions: questions, byID: byID}, nil
}

// Default returns the catalog built from the standard questionnaire
func Default() (*Catalog, error) {
	return New(Questions())
}

// Validate checks the catalog invariants: weights sum to TotalWeight, every
// option score is non-negative and bounded by its question's weight, and
// question ids are unique.
func Validate(questions []model.Question) error {
	seen := make(map[string]bool, len(questions))
	sum := 0

	for _, q := range questions {
		if q.ID == "" {
			return &ConfigurationError{Reason: "question with empty id"}
		}
		if seen[q.ID] {
			return &ConfigurationError{Reason: fmt.Sprintf("duplicate question id %q", q.ID)}
		}
		seen[q.ID] = true

		if q.Weight <= 0 {
			return &ConfigurationError{Reason: fmt.Sprintf("question %q has non-positive weight %d", q.ID, q.Weight)}
		}
		sum += q.Weight

		for _, opt := range q.Options {
			if opt.Score < 0 {
				return &ConfigurationError{Reason: fmt.Sprintf("question %q option %q has negative score", q.ID, opt.Label)}
			}
			if opt.Score > q.Weight {
				return &ConfigurationError{Reason: fmt.Sprintf("question %q option %q scores %d, above weight %d", q.ID, opt.Label, opt.Score, q.Weight)}
			}
		}
	}

	if sum != TotalWeight {
		return &ConfigurationError{Reason: fmt.Sprintf("weights sum to %d, expected %d", sum, TotalWeight)}
	}

	return nil
}

// Questions returns the ordered question list
func (c *Catalog) Questions() []model.Question {
	return c.questions
}

// Get returns the question with the given id
func (c *Catalog) Get(id string) (*model.Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.questions[i], true
}

// Len returns the number of questions
func (c *Catalog) Len() int {
	return len(c.questions)
}
