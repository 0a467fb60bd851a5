package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"analyseme/internal/model"
	"analyseme/internal/service"
)

// AnalyticsHandler handles the housing-pressure analytics endpoints
type AnalyticsHandler struct {
	pressureSvc *service.PressureService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(pressureSvc *service.PressureService) *AnalyticsHandler {
	return &AnalyticsHandler{pressureSvc: pressureSvc}
}

// PressureRequest is one jurisdiction's quarterly rows, oldest first
type PressureRequest struct {
	Jurisdiction string                 `json:"jurisdiction"`
	Quarters     []model.QuarterlyStats `json:"quarters"`
}

// Pressure handles POST /v1/analytics/pressure
func (h *AnalyticsHandler) Pressure(w http.ResponseWriter, r *http.Request) {
	var req PressureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.pressureSvc.Report(req.Jurisdiction, req.Quarters)
	if err != nil {
		if errors.Is(err, service.ErrNoQuarters) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// CompareRequest maps jurisdiction name to its quarterly rows
type CompareRequest struct {
	Jurisdictions map[string][]model.QuarterlyStats `json:"jurisdictions"`
}

// Compare handles POST /v1/analytics/pressure/compare
func (h *AnalyticsHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ranking := h.pressureSvc.Compare(req.Jurisdictions)
	writeJSON(w, http.StatusOK, map[string]interface{}{"ranking": ranking})
}
