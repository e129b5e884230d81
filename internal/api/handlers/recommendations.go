package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/advisor"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/apperrors"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/service"
)

// RecommendationsHandler handles recommendation fetch HTTP requests.
type RecommendationsHandler struct {
	recommendationService *service.RecommendationService
}

// NewRecommendationsHandler creates a new RecommendationsHandler
func NewRecommendationsHandler(recommendationService *service.RecommendationService) *RecommendationsHandler {
	return &RecommendationsHandler{
		recommendationService: recommendationService,
	}
}

// FetchErrorResponse is the terminal-failure shape. The last classified error
// is surfaced verbatim; Retryable tells the client a manual retry is allowed.
type FetchErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Status    int    `json:"status,omitempty"` // upstream HTTP status, for http_status kind
	Retryable bool   `json:"retryable"`
}

// Recommendations runs one logical fetch request through the orchestrator.
//
// Endpoint: GET /api/recommendations?useDefaults=true|false
// Response: 200 OK with the normalized result (possibly degraded)
// Error: 502 Bad Gateway once the retry budget is exhausted, carrying the
// last classified error
func (h *RecommendationsHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	useDefaults := parseUseDefaults(r)

	result, err := h.recommendationService.Fetch(r.Context(), useDefaults)
	h.respondFetch(w, r, result, err)
}

// RetryFallback restarts a failed request from fallback attempt 1. Backs the
// client's manual retry button.
//
// Endpoint: POST /api/recommendations/retry?useDefaults=true|false
func (h *RecommendationsHandler) RetryFallback(w http.ResponseWriter, r *http.Request) {
	useDefaults := parseUseDefaults(r)

	result, err := h.recommendationService.RetryFallback(r.Context(), useDefaults)
	h.respondFetch(w, r, result, err)
}

// Cached serves the last good refresher result without touching the network.
//
// Endpoint: GET /api/recommendations/cached?useDefaults=true|false
// Error: 404 Not Found when the refresher has not produced a result yet
func (h *RecommendationsHandler) Cached(w http.ResponseWriter, r *http.Request) {
	useDefaults := parseUseDefaults(r)

	cached, err := h.recommendationService.Cached(useDefaults)
	if errors.Is(err, apperrors.ErrNoCachedResult) {
		respondError(w, http.StatusNotFound, apperrors.ErrNoCachedResult.Error(), nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read cached result", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, cached)
}

func (h *RecommendationsHandler) respondFetch(w http.ResponseWriter, r *http.Request, result *advisor.Result, err error) {
	if err == nil {
		respondJSON(w, http.StatusOK, result)
		return
	}

	// Client went away; nothing to write.
	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		return
	}

	var fetchErr *advisor.FetchError
	if errors.As(err, &fetchErr) {
		respondJSON(w, http.StatusBadGateway, FetchErrorResponse{
			Error:     fetchErr.Error(),
			Kind:      string(fetchErr.Kind),
			Status:    fetchErr.Status,
			Retryable: true,
		})
		return
	}

	respondError(w, http.StatusInternalServerError, "recommendation fetch failed", err.Error())
}

// parseUseDefaults reads the useDefaults query parameter; absent or
// unparseable values default to true, matching the mobile client's behaviour.
func parseUseDefaults(r *http.Request) bool {
	raw := r.URL.Query().Get("useDefaults")
	if raw == "" {
		return true
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return parsed
}
