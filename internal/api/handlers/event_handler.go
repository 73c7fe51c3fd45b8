package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/ecxhq/identity-be/internal/models"
	"github.com/ecxhq/identity-be/internal/services"
)

// EventHandler handles HTTP requests for the audit event trail.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent returns the most recent audit events, newest first. The optional
// ?limit= parameter is capped at 200 and defaults to 50.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondMessage(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = min(parsed, 200)
	}

	events, err := h.service.GetRecentEvents(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve events")
		respondMessage(w, http.StatusInternalServerError, "Failed to retrieve events")
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"events": events})
}
