package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/api/request"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/apperrors"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/model"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/service"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/validation"
)

// DeveloperHandler handles the developer/diagnostics HTTP requests:
// fetch telemetry and the stored advisor credential.
type DeveloperHandler struct {
	telemetryService  *service.TelemetryService
	credentialService *service.CredentialService
}

// NewDeveloperHandler creates a new DeveloperHandler
func NewDeveloperHandler(telemetryService *service.TelemetryService, credentialService *service.CredentialService) *DeveloperHandler {
	return &DeveloperHandler{
		telemetryService:  telemetryService,
		credentialService: credentialService,
	}
}

// Telemetry lists fetch events, newest first.
//
// Endpoint: GET /api/developer/telemetry?requestId=&state=&limit=
func (h *DeveloperHandler) Telemetry(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid limit", raw)
			return
		}
		limit = parsed
	}

	filter := model.FetchEventFilter{
		RequestID: query.Get("requestId"),
		ToState:   query.Get("state"),
		Limit:     limit,
	}

	if err := validation.ValidateFetchEventFilter(filter); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			respondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
			return
		}
		respondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	events, err := h.telemetryService.GetEvents(filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFetchEvents.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, events)
}

// PurgeTelemetry deletes fetch events older than the given cutoff.
//
// Endpoint: DELETE /api/developer/telemetry?before=RFC3339
// Response: 200 OK with the number of deleted events
func (h *DeveloperHandler) PurgeTelemetry(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("before")
	if raw == "" {
		respondError(w, http.StatusBadRequest, apperrors.ErrInvalidCutoff.Error(), "before parameter is required")
		return
	}

	cutoff, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, apperrors.ErrInvalidCutoff.Error(), err.Error())
		return
	}

	deleted, err := h.telemetryService.PurgeBefore(cutoff)
	if err != nil {
		respondError(w, http.StatusInternalServerError, apperrors.ErrFailedToPurgeFetchEvents.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// Credential reports masked metadata about the stored advisor token.
//
// Endpoint: GET /api/developer/credential
func (h *DeveloperHandler) Credential(w http.ResponseWriter, r *http.Request) {
	info, err := h.credentialService.Describe()
	if errors.Is(err, apperrors.ErrEncryptionKeyNotConfigured) {
		respondError(w, http.StatusConflict, err.Error(), nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCredential.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

// SetCredential stores a new advisor bearer token, encrypted at rest.
//
// Endpoint: POST /api/developer/credential
// Error: 409 Conflict when no encryption key is configured
func (h *DeveloperHandler) SetCredential(w http.ResponseWriter, r *http.Request) {
	var req request.SetCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetCredential(req); err != nil {
		var validationErr *validation.Error
		if errors.As(err, &validationErr) {
			respondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
			return
		}
		respondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.credentialService.SetToken(req.Token); err != nil {
		if errors.Is(err, apperrors.ErrEncryptionKeyNotConfigured) {
			respondError(w, http.StatusConflict, err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, apperrors.ErrFailedToStoreCredential.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
