package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"analyseme/internal/service"
)

// AssessmentHandler handles the assessment lifecycle endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// QuestionView is a question as shown to the citizen: option labels only,
// scores and crisis flags stay server-side
type QuestionView struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// Start handles POST /v1/assessments
func (h *AssessmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.assessmentSvc.StartSession(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id":     session.ID,
		"question_count": len(h.assessmentSvc.Questions()),
	})
}

// Questions handles GET /v1/assessments/questions
func (h *AssessmentHandler) Questions(w http.ResponseWriter, r *http.Request) {
	questions := h.assessmentSvc.Questions()

	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		labels := make([]string, 0, len(q.Options))
		for _, opt := range q.Options {
			labels = append(labels, opt.Label)
		}
		views = append(views, QuestionView{ID: q.ID, Prompt: q.Prompt, Options: labels})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": views})
}

// AnswerRequest is the request body for recording an answer
type AnswerRequest struct {
	Label string `json:"label"`
}

// Answer handles PUT /v1/assessments/{sessionID}/answers/{questionID}
func (h *AssessmentHandler) Answer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.assessmentSvc.RecordAnswer(r.Context(), vars["sessionID"], vars["questionID"], req.Label)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// ContextRequest is the request body for the free-text context step
type ContextRequest struct {
	AdditionalContext string `json:"additional_context"`
}

// Context handles PUT /v1/assessments/{sessionID}/context
func (h *AssessmentHandler) Context(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]

	var req ContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.assessmentSvc.SetContext(r.Context(), sessionID, req.AdditionalContext); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// Complete handles POST /v1/assessments/{sessionID}/complete
func (h *AssessmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]

	outcome, err := h.assessmentSvc.Complete(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// Retry handles POST /v1/assessments/{sessionID}/retry
func (h *AssessmentHandler) Retry(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]

	outcome, err := h.assessmentSvc.Retry(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// Result handles GET /v1/assessments/{sessionID}/result
func (h *AssessmentHandler) Result(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]

	outcome, err := h.assessmentSvc.Result(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrNotCompleted):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnknownQuestion):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAlreadyCompleted):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
