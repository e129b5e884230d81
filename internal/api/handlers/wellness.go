package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/api/request"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/service"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/validation"
)

// WellnessHandler handles wellness scoring HTTP requests.
type WellnessHandler struct {
	wellnessService *service.WellnessService
}

// NewWellnessHandler creates a new WellnessHandler
func NewWellnessHandler(wellnessService *service.WellnessService) *WellnessHandler {
	return &WellnessHandler{
		wellnessService: wellnessService,
	}
}

// Score computes the wellness score for a submitted portfolio snapshot.
// Missing snapshot fields degrade to documented defaults; only structurally
// invalid values are rejected.
//
// Endpoint: POST /api/wellness/score
// Response: 200 OK with the composite score, metric breakdown, and advice
// Error: 400 Bad Request on malformed JSON or invalid field values
func (h *WellnessHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req request.WellnessScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateWellnessScore(req); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			respondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
			return
		}
		respondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result := h.wellnessService.ComputeScore(req.PortfolioSnapshot)
	respondJSON(w, http.StatusOK, result)
}
