package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"analyseme/internal/cache"
	"analyseme/internal/model"
)

var (
	ErrSessionNotFound  = errors.New("assessment session not found")
	ErrUnknownQuestion  = errors.New("unknown question id")
	ErrNotCompleted     = errors.New("assessment not completed yet")
	ErrAlreadyCompleted = errors.New("assessment already completed")
)

// Enricher produces a narrative result for a payload. Implemented by
// EnrichmentService; any error from Enrich is answered with the fallback.
type Enricher interface {
	Enrich(ctx context.Context, payload *model.AssessmentPayload) (*model.EnrichmentResult, error)
}

// AssessmentService owns the assessment lifecycle: answer accumulation,
// completion (score, classify, build, enrich-or-fallback) and enrichment
// retry. Each session is independent; there is no shared mutable state.
type AssessmentService struct {
	scoring  *ScoringService
	enricher Enricher
	sessions cache.SessionCache
	results  cache.ResultCache
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(scoring *ScoringService, enricher Enricher, sessions cache.SessionCache, results cache.ResultCache) *AssessmentService {
	return &AssessmentService{
		scoring:  scoring,
		enricher: enricher,
		sessions: sessions,
		results:  results,
	}
}

// Questions returns the catalog's ordered question list
func (s *AssessmentService) Questions() []model.Question {
	return s.scoring.Catalog().Questions()
}

// StartSession opens a new empty session and returns its id
func (s *AssessmentService) StartSession(ctx context.Context) (*cache.Session, error) {
	session := &cache.Session{
		ID:        uuid.New().String(),
		Answers:   model.AnswerSet{},
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RecordAnswer stores one selected option label. The question id must exist
// in the catalog; the label is stored as given — an unrecognized label simply
// scores nothing at completion, matching an unanswered question.
func (s *AssessmentService) RecordAnswer(ctx context.Context, sessionID, questionID, label string) error {
	if _, ok := s.scoring.Catalog().Get(questionID); !ok {
		return ErrUnknownQuestion
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	session.Answers[questionID] = label
	return s.sessions.Set(ctx, session)
}

// SetContext stores the citizen's free-text additional context. The text is
// never parsed; it travels verbatim in the payload for the model to read.
func (s *AssessmentService) SetContext(ctx context.Context, sessionID, text string) error {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	session.AdditionalContext = text
	return s.sessions.Set(ctx, session)
}

// Complete snapshots the session's answers, builds the canonical payload and
// asks for enrichment. An enrichment failure of any kind degrades to the
// deterministic fallback; completion itself cannot fail for business reasons.
func (s *AssessmentService) Complete(ctx context.Context, sessionID string) (*model.AssessmentOutcome, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if existing, err := s.results.Get(ctx, sessionID); err == nil && existing != nil {
		return nil, ErrAlreadyCompleted
	}

	payload := s.scoring.BuildPayload(session.Answers, session.AdditionalContext, GenerateReference())

	outcome := &model.AssessmentOutcome{
		SessionID:   sessionID,
		Reference:   payload.Reference,
		Payload:     payload,
		CompletedAt: time.Now(),
	}

	result, err := s.enricher.Enrich(ctx, payload)
	if err != nil {
		log.Printf("enrichment failed for %s, using fallback: %v", payload.Reference, err)
		outcome.Result = FallbackResponse(payload)
		outcome.UsedFallback = true
	} else {
		outcome.Result = result
	}

	if err := s.results.Set(ctx, sessionID, outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}

// Retry re-runs enrichment against the already-built payload. A success
// replaces the cached outcome wholesale; a failure leaves the prior outcome
// untouched. Safe to call any number of times.
func (s *AssessmentService) Retry(ctx context.Context, sessionID string) (*model.AssessmentOutcome, error) {
	outcome, err := s.results.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if outcome == nil {
		return nil, ErrNotCompleted
	}

	result, err := s.enricher.Enrich(ctx, outcome.Payload)
	if err != nil {
		log.Printf("enrichment retry failed for %s: %v", outcome.Reference, err)
		return outcome, nil
	}

	outcome.Result = result
	outcome.UsedFallback = false
	if err := s.results.Set(ctx, sessionID, outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}

// Result returns the cached outcome for a completed session
func (s *AssessmentService) Result(ctx context.Context, sessionID string) (*model.AssessmentOutcome, error) {
	outcome, err := s.results.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if outcome == nil {
		return nil, ErrNotCompleted
	}
	return outcome, nil
}

// GenerateReference creates a citizen-facing reference id,
// AM-<YYYYMMDDHHmm>-<4 digits>
func GenerateReference() string {
	return fmt.Sprintf("AM-%s-%04d", time.Now().Format("200601021504"), rand.IntN(10000))
}
