package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analyseme/internal/cache"
	"analyseme/internal/catalog"
	"analyseme/internal/model"
	"analyseme/internal/service"
)

type memSessionCache struct {
	sessions map[string]*cache.Session
}

func (m *memSessionCache) Get(ctx context.Context, id string) (*cache.Session, error) {
	return m.sessions[id], nil
}

func (m *memSessionCache) Set(ctx context.Context, session *cache.Session) error {
	m.sessions[session.ID] = session
	return nil
}

type memResultCache struct {
	results map[string]*model.AssessmentOutcome
}

func (m *memResultCache) Get(ctx context.Context, sessionID string) (*model.AssessmentOutcome, error) {
	return m.results[sessionID], nil
}

func (m *memResultCache) Set(ctx context.Context, sessionID string, outcome *model.AssessmentOutcome) error {
	m.results[sessionID] = outcome
	return nil
}

type stubEnricher struct {
	err error
}

func (s *stubEnricher) Enrich(ctx context.Context, payload *model.AssessmentPayload) (*model.EnrichmentResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.EnrichmentResult{
		UserResponse: model.UserResponse{Greeting: "From the model", SupportLinks: []model.SupportLink{}},
	}, nil
}

func newTestServer(t *testing.T, enricher service.Enricher) *httptest.Server {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)

	assessmentSvc := service.NewAssessmentService(
		service.NewScoringService(cat),
		enricher,
		&memSessionCache{sessions: map[string]*cache.Session{}},
		&memResultCache{results: map[string]*model.AssessmentOutcome{}},
	)

	srv := httptest.NewServer(NewRouter(&Container{
		AssessmentService: assessmentSvc,
		PressureService:   service.NewPressureService(),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}, out interface{}) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &stubEnricher{})

	var body map[string]string
	status := doJSON(t, "GET", srv.URL+"/health", nil, &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestQuestionsEndpointHidesScores(t *testing.T) {
	srv := newTestServer(t, &stubEnricher{})

	var body struct {
		Questions []struct {
			ID      string   `json:"id"`
			Prompt  string   `json:"prompt"`
			Options []string `json:"options"`
		} `json:"questions"`
	}
	status := doJSON(t, "GET", srv.URL+"/v1/assessments/questions", nil, &body)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body.Questions, 10)
	assert.Equal(t, "housing_stability", body.Questions[0].ID)
	assert.Len(t, body.Questions[0].Options, 5)
}

func TestAssessmentFlowWithFallbackAndRetry(t *testing.T) {
	enricher := &stubEnricher{err: errors.New("bedrock unavailable")}
	srv := newTestServer(t, enricher)

	var started struct {
		SessionID     string `json:"session_id"`
		QuestionCount int    `json:"question_count"`
	}
	status := doJSON(t, "POST", srv.URL+"/v1/assessments", nil, &started)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, started.SessionID)
	assert.Equal(t, 10, started.QuestionCount)

	base := srv.URL + "/v1/assessments/" + started.SessionID

	status = doJSON(t, "PUT", base+"/answers/housing_stability",
		map[string]string{"label": "Crisis - I am homeless or about to be"}, nil)
	require.Equal(t, http.StatusOK, status)

	status = doJSON(t, "PUT", base+"/context",
		map[string]string{"additional_context": "staying with a friend until Friday"}, nil)
	require.Equal(t, http.StatusOK, status)

	var outcome model.AssessmentOutcome
	status = doJSON(t, "POST", base+"/complete", nil, &outcome)
	require.Equal(t, http.StatusOK, status)

	assert.True(t, outcome.UsedFallback)
	assert.Equal(t, model.RiskHigh, outcome.Payload.Assessment.RiskLevel)
	assert.Equal(t, 20, outcome.Payload.Assessment.TotalScore)
	assert.Contains(t, outcome.Result.OfficerSummary.Notes, "fallback")

	// Completing again conflicts
	status = doJSON(t, "POST", base+"/complete", nil, nil)
	assert.Equal(t, http.StatusConflict, status)

	// Enrichment recovers; retry swaps the fallback for the real result
	enricher.err = nil
	var retried model.AssessmentOutcome
	status = doJSON(t, "POST", base+"/retry", nil, &retried)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, retried.UsedFallback)
	assert.Equal(t, "From the model", retried.Result.UserResponse.Greeting)
	assert.Equal(t, outcome.Reference, retried.Reference)

	var fetched model.AssessmentOutcome
	status = doJSON(t, "GET", base+"/result", nil, &fetched)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, fetched.UsedFallback)
}

func TestAnswerValidationStatuses(t *testing.T) {
	srv := newTestServer(t, &stubEnricher{})

	var started struct {
		SessionID string `json:"session_id"`
	}
	status := doJSON(t, "POST", srv.URL+"/v1/assessments", nil, &started)
	require.Equal(t, http.StatusCreated, status)

	status = doJSON(t, "PUT", srv.URL+"/v1/assessments/"+started.SessionID+"/answers/shoe_size",
		map[string]string{"label": "Large"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = doJSON(t, "PUT", srv.URL+"/v1/assessments/missing/answers/housing_stability",
		map[string]string{"label": "anything"}, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status = doJSON(t, "GET", srv.URL+"/v1/assessments/missing/result", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPressureEndpoints(t *testing.T) {
	srv := newTestServer(t, &stubEnricher{})

	var report model.PressureReport
	status := doJSON(t, "POST", srv.URL+"/v1/analytics/pressure", map[string]interface{}{
		"jurisdiction": "Birmingham",
		"quarters": []model.QuarterlyStats{
			{Quarter: "2025-Q1", HomelessApplications: 32},
			{Quarter: "2025-Q2", HomelessApplications: 40},
		},
	}, &report)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Birmingham", report.Jurisdiction)
	assert.Len(t, report.Points, 2)

	status = doJSON(t, "POST", srv.URL+"/v1/analytics/pressure", map[string]interface{}{
		"jurisdiction": "Birmingham",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var compared struct {
		Ranking []model.JurisdictionIndex `json:"ranking"`
	}
	status = doJSON(t, "POST", srv.URL+"/v1/analytics/pressure/compare", map[string]interface{}{
		"jurisdictions": map[string][]model.QuarterlyStats{
			"Birmingham": {{Quarter: "2025-Q3", HomelessApplications: 60}},
			"Solihull":   {{Quarter: "2025-Q3", HomelessApplications: 20}},
		},
	}, &compared)

	require.Equal(t, http.StatusOK, status)
	require.Len(t, compared.Ranking, 2)
	assert.Equal(t, "Birmingham", compared.Ranking[0].Jurisdiction)
}
