package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"feedback-backend/internal/models"
	"feedback-backend/internal/repository"
	"feedback-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type FeedbackHandler struct {
	service *service.FeedbackService
	logger  zerolog.Logger
}

func NewFeedbackHandler(service *service.FeedbackService, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		logger:  logger,
	}
}

// --- POST /feedback ---

func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	fb, err := h.service.CreateFeedback(r.Context(), payload)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, fb)
}

// --- GET /feedback ---

func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	fbs, err := h.service.ListFeedback(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fbs)
}

// --- GET /feedback/{id} ---

func (h *FeedbackHandler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	fb, err := h.service.GetFeedback(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fb)
}

// --- PUT /feedback/{id} ---

func (h *FeedbackHandler) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	fb, err := h.service.UpdateFeedback(r.Context(), id, payload)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fb)
}

// --- DELETE /feedback/{id} ---

func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteFeedback(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "feedback deleted successfully"})
}

// writeError maps the service error taxonomy onto HTTP statuses. Storage
// internals never leak into response bodies.
func (h *FeedbackHandler) writeError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Message,
			"kind":  string(verr.Kind),
		})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "feedback not found"})
	default:
		h.logger.Error().Err(err).Msg("storage error")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "service unavailable"})
	}
}

func decodePayload(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
			"kind":  string(models.KindMissingField),
		})
		return nil, false
	}
	return payload, true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "feedback not found"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
