package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analyseme/internal/config"
	"analyseme/internal/model"
)

func testBedrockConfig(baseURL string) *config.BedrockConfig {
	return &config.BedrockConfig{
		APIKey:    "test-key",
		BaseURL:   baseURL,
		ModelID:   "test-model",
		TimeoutMS: 500,
		MaxTokens: 2500,
	}
}

// converseEnvelope wraps an inner reply in the Bedrock converse envelope
func converseEnvelope(t *testing.T, inner string) []byte {
	t.Helper()
	envelope := map[string]interface{}{
		"output": map[string]interface{}{
			"message": map[string]interface{}{
				"content": []map[string]string{{"text": inner}},
			},
		},
	}
	data, err := json.Marshal(envelope)
	require.NoError(t, err)
	return data
}

func enrichmentServer(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write(body)
	}))
}

const validInnerReply = `{
	"user_response": {
		"greeting": "Hello, thank you for sharing your situation with us.",
		"support_links": [
			{"name": "Shelter Birmingham", "url": "https://example.org", "phone": "0808 800 4444", "description": "Housing advice", "priority": "high"}
		],
		"next_steps": "An officer will be in touch.",
		"emergency_note": null
	},
	"officer_summary": {
		"risk_level": "MEDIUM",
		"key_concerns": ["Score: 40/100"],
		"recommended_actions": ["Review case"],
		"referral_suggestions": ["Shelter"],
		"notes": "Citizen mentioned arrears."
	}
}`

func TestEnrichSuccess(t *testing.T) {
	srv := enrichmentServer(t, http.StatusOK, converseEnvelope(t, validInnerReply))
	defer srv.Close()

	s := NewEnrichmentService(testBedrockConfig(srv.URL))
	result, err := s.Enrich(context.Background(), &model.AssessmentPayload{Reference: "AM-test"})

	require.NoError(t, err)
	assert.Equal(t, "Hello, thank you for sharing your situation with us.", result.UserResponse.Greeting)
	require.Len(t, result.UserResponse.SupportLinks, 1)
	assert.Equal(t, "Shelter Birmingham", result.UserResponse.SupportLinks[0].Name)
	assert.Equal(t, "MEDIUM", result.OfficerSummary.RiskLevel)
	assert.Nil(t, result.UserResponse.EmergencyNote)
}

func TestEnrichSendsConverseRequest(t *testing.T) {
	var got struct {
		auth string
		body converseRequest
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got.body))
		w.WriteHeader(http.StatusOK)
		w.Write(converseEnvelope(t, validInnerReply))
	}))
	defer srv.Close()

	s := NewEnrichmentService(testBedrockConfig(srv.URL))
	payload := &model.AssessmentPayload{Reference: "AM-202508301015-0199"}
	_, err := s.Enrich(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", got.auth)
	require.Len(t, got.body.Messages, 1)
	assert.Equal(t, "user", got.body.Messages[0].Role)
	require.Len(t, got.body.Messages[0].Content, 1)
	assert.Contains(t, got.body.Messages[0].Content[0].Text, "AM-202508301015-0199")
	require.Len(t, got.body.System, 1)
	assert.Contains(t, got.body.System[0].Text, "officer_summary")
	assert.Equal(t, 2500, got.body.InferenceConfig.MaxTokens)
}

func TestEnrichDoesNotMutatePayload(t *testing.T) {
	srv := enrichmentServer(t, http.StatusOK, converseEnvelope(t, validInnerReply))
	defer srv.Close()

	payload := &model.AssessmentPayload{
		Reference:  "AM-test",
		Assessment: model.Assessment{TotalScore: 40, RiskLevel: model.RiskMedium},
		RiskFlags:  []model.RiskFlag{{Category: "financial_pressure"}},
	}
	before := *payload

	s := NewEnrichmentService(testBedrockConfig(srv.URL))
	_, err := s.Enrich(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, before, *payload)
}

func TestEnrichNotConfigured(t *testing.T) {
	cfg := testBedrockConfig("http://unused")
	cfg.APIKey = ""

	s := NewEnrichmentService(cfg)
	result, err := s.Enrich(context.Background(), &model.AssessmentPayload{})

	assert.Nil(t, result)
	var enrichErr *EnrichmentError
	require.ErrorAs(t, err, &enrichErr)
	assert.Equal(t, "config", enrichErr.Stage)
}

func TestEnrichFailureStages(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      func(t *testing.T) []byte
		wantStage string
	}{
		{
			name:      "non-success status",
			status:    http.StatusInternalServerError,
			body:      func(t *testing.T) []byte { return []byte(`{"message":"throttled"}`) },
			wantStage: "status",
		},
		{
			name:      "body not the expected envelope",
			status:    http.StatusOK,
			body:      func(t *testing.T) []byte { return []byte(`not json at all`) },
			wantStage: "envelope",
		},
		{
			name:      "envelope with no content",
			status:    http.StatusOK,
			body:      func(t *testing.T) []byte { return []byte(`{"output":{"message":{"content":[]}}}`) },
			wantStage: "envelope",
		},
		{
			name:      "inner text not JSON",
			status:    http.StatusOK,
			body:      func(t *testing.T) []byte { return converseEnvelope(t, "Sorry, I cannot help with that.") },
			wantStage: "decode",
		},
		{
			name:      "user_response is neither object nor string",
			status:    http.StatusOK,
			body:      func(t *testing.T) []byte { return converseEnvelope(t, `{"user_response": 42}`) },
			wantStage: "schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := enrichmentServer(t, tt.status, tt.body(t))
			defer srv.Close()

			s := NewEnrichmentService(testBedrockConfig(srv.URL))
			result, err := s.Enrich(context.Background(), &model.AssessmentPayload{})

			assert.Nil(t, result)
			var enrichErr *EnrichmentError
			require.ErrorAs(t, err, &enrichErr)
			assert.Equal(t, tt.wantStage, enrichErr.Stage)
		})
	}
}

func TestEnrichTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	cfg := testBedrockConfig(srv.URL)
	cfg.TimeoutMS = 50

	s := NewEnrichmentService(cfg)
	result, err := s.Enrich(context.Background(), &model.AssessmentPayload{})

	assert.Nil(t, result)
	var enrichErr *EnrichmentError
	require.ErrorAs(t, err, &enrichErr)
	assert.Equal(t, "transport", enrichErr.Stage)
}

func TestParseSalvagesStringUserResponse(t *testing.T) {
	inner := `{
		"user_response": "Thank you for completing the assessment, help is on the way.",
		"officer_summary": {"risk_level": "LOW", "notes": ""}
	}`

	result, err := parseEnrichmentResult([]byte(inner))

	require.NoError(t, err)
	assert.Equal(t, "Thank you for completing the assessment, help is on the way.", result.UserResponse.Greeting)
	assert.Empty(t, result.UserResponse.SupportLinks)
	assert.Equal(t, "LOW", result.OfficerSummary.RiskLevel)
}

func TestParseSkipsMalformedSupportLinks(t *testing.T) {
	inner := `{
		"user_response": {
			"greeting": "Hello",
			"support_links": [
				"just a string",
				{"name": "Citizens Advice", "url": "https://example.org", "description": "Advice", "priority": "medium"},
				17
			],
			"next_steps": "Wait for contact."
		},
		"officer_summary": {"risk_level": "LOW"}
	}`

	result, err := parseEnrichmentResult([]byte(inner))

	require.NoError(t, err)
	require.Len(t, result.UserResponse.SupportLinks, 1)
	assert.Equal(t, "Citizens Advice", result.UserResponse.SupportLinks[0].Name)
}

func TestParseToleratesMalformedOfficerSummary(t *testing.T) {
	inner := `{
		"user_response": {"greeting": "Hello", "support_links": []},
		"officer_summary": "should have been an object"
	}`

	result, err := parseEnrichmentResult([]byte(inner))

	require.NoError(t, err)
	assert.Equal(t, "Hello", result.UserResponse.Greeting)
	assert.Empty(t, result.OfficerSummary.RiskLevel)
}

func TestParseMissingSectionsYieldEmptyResult(t *testing.T) {
	result, err := parseEnrichmentResult([]byte(`{}`))

	require.NoError(t, err)
	assert.Empty(t, result.UserResponse.Greeting)
	assert.NotNil(t, result.UserResponse.SupportLinks)
}
