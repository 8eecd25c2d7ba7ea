package handlers

import (
	"net/http"
	"time"

	"feedback-backend/internal/service"

	"github.com/rs/zerolog"
)

type HealthHandler struct {
	service    *service.FeedbackService
	instanceID string
	logger     zerolog.Logger
}

func NewHealthHandler(service *service.FeedbackService, instanceID string, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		service:    service,
		instanceID: instanceID,
		logger:     logger,
	}
}

// --- GET /health ---

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Health(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unhealthy",
			"error":  "storage unreachable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"feedback_count": count,
		"instance_id":    h.instanceID,
	})
}
