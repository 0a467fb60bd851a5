package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"analyseme/internal/config"
	"analyseme/internal/model"
)

// EnrichmentError reports a failed enrichment call. Every failure mode of the
// remote call collapses into this type; callers recover by substituting the
// fallback response, never by surfacing the error to the citizen.
type EnrichmentError struct {
	Stage string // "config", "transport", "status", "envelope", "decode", "schema"
	Err   error
}

func (e *EnrichmentError) Error() string {
	if e.Err == nil {
		return "enrichment failed at " + e.Stage
	}
	return "enrichment failed at " + e.Stage + ": " + e.Err.Error()
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}

// EnrichmentService requests the two-part narrative (citizen guidance and
// officer summary) from the Bedrock runtime converse endpoint. One round
// trip, bounded timeout, no streaming. It never mutates the payload.
type EnrichmentService struct {
	config *config.BedrockConfig
	client *http.Client
}

// NewEnrichmentService creates a new enrichment service
func NewEnrichmentService(cfg *config.BedrockConfig) *EnrichmentService {
	return &EnrichmentService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Converse request/reply wire types
type converseText struct {
	Text string `json:"text"`
}

type converseMessage struct {
	Role    string         `json:"role"`
	Content []converseText `json:"content"`
}

type converseRequest struct {
	Messages        []converseMessage `json:"messages"`
	System          []converseText    `json:"system"`
	InferenceConfig struct {
		MaxTokens int `json:"maxTokens"`
	} `json:"inferenceConfig"`
}

// Enrich sends the payload to the model and returns the validated result.
// Any failure returns an *EnrichmentError.
func (s *EnrichmentService) Enrich(ctx context.Context, payload *model.AssessmentPayload) (*model.EnrichmentResult, error) {
	if !s.config.IsEnabled() {
		return nil, &EnrichmentError{Stage: "config", Err: fmt.Errorf("BEDROCK_API_KEY not set")}
	}

	text, err := s.converse(ctx, payload)
	if err != nil {
		return nil, err
	}

	return parseEnrichmentResult([]byte(text))
}

// converse performs the single round trip and extracts the inner text from
// the {output:{message:{content:[{text}]}}} envelope
func (s *EnrichmentService) converse(ctx context.Context, payload *model.AssessmentPayload) (string, error) {
	req := converseRequest{
		Messages: []converseMessage{
			{Role: "user", Content: []converseText{{Text: buildUserPrompt(payload)}}},
		},
		System: []converseText{{Text: systemPrompt}},
	}
	req.InferenceConfig.MaxTokens = s.config.MaxTokens

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return "", &EnrichmentError{Stage: "transport", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.config.ConverseEndpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", &EnrichmentError{Stage: "transport", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", &EnrichmentError{Stage: "transport", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &EnrichmentError{Stage: "transport", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &EnrichmentError{Stage: "status", Err: fmt.Errorf("bedrock returned %d", resp.StatusCode)}
	}

	var envelope struct {
		Output struct {
			Message struct {
				Content []struct {
					Text string `json:"text"`
				} `json:"content"`
			} `json:"message"`
		} `json:"output"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", &EnrichmentError{Stage: "envelope", Err: err}
	}
	if len(envelope.Output.Message.Content) == 0 || envelope.Output.Message.Content[0].Text == "" {
		return "", &EnrichmentError{Stage: "envelope", Err: fmt.Errorf("empty model reply")}
	}

	return envelope.Output.Message.Content[0].Text, nil
}

// parseEnrichmentResult validates the model's JSON against the result schema.
// The shape is untrusted: a string user_response is salvaged as the greeting,
// malformed support_links entries are skipped individually, and a malformed
// officer_summary degrades to empty rather than failing the enrichment.
func parseEnrichmentResult(data []byte) (*model.EnrichmentResult, error) {
	var raw struct {
		UserResponse   json.RawMessage `json:"user_response"`
		OfficerSummary json.RawMessage `json:"officer_summary"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &EnrichmentError{Stage: "decode", Err: err}
	}

	result := &model.EnrichmentResult{}

	if len(raw.UserResponse) > 0 {
		user, err := parseUserResponse(raw.UserResponse)
		if err != nil {
			return nil, err
		}
		result.UserResponse = user
	}

	if len(raw.OfficerSummary) > 0 {
		// Tolerate a malformed officer block; the citizen-facing half still stands
		_ = json.Unmarshal(raw.OfficerSummary, &result.OfficerSummary)
	}

	if result.UserResponse.SupportLinks == nil {
		result.UserResponse.SupportLinks = []model.SupportLink{}
	}

	return result, nil
}

func parseUserResponse(data json.RawMessage) (model.UserResponse, error) {
	var raw struct {
		Greeting      string            `json:"greeting"`
		SupportLinks  []json.RawMessage `json:"support_links"`
		NextSteps     string            `json:"next_steps"`
		EmergencyNote *string           `json:"emergency_note"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		// Models sometimes flatten user_response to a bare string; keep it as
		// the greeting instead of rejecting the whole reply
		var text string
		if err := json.Unmarshal(data, &text); err == nil {
			return model.UserResponse{Greeting: text, SupportLinks: []model.SupportLink{}}, nil
		}
		return model.UserResponse{}, &EnrichmentError{Stage: "schema", Err: err}
	}

	user := model.UserResponse{
		Greeting:      raw.Greeting,
		SupportLinks:  []model.SupportLink{},
		NextSteps:     raw.NextSteps,
		EmergencyNote: raw.EmergencyNote,
	}

	for _, entry := range raw.SupportLinks {
		var link model.SupportLink
		if err := json.Unmarshal(entry, &link); err != nil {
			continue // skip malformed entries, keep the rest
		}
		user.SupportLinks = append(user.SupportLinks, link)
	}

	return user, nil
}
