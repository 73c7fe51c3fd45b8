package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ecxhq/identity-be/internal/services"
)

// LogHandler serves the persisted request log.
type LogHandler struct {
	service services.LogServiceProvider
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(service services.LogServiceProvider) *LogHandler {
	return &LogHandler{service: service}
}

// GetAll returns every stored request-log line as plain text, one per line,
// in insertion order.
func (h *LogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.GetAllLines()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve request logs")
		respondMessage(w, http.StatusInternalServerError, "Failed to retrieve logs")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if len(lines) > 0 {
		w.Write([]byte(strings.Join(lines, "\n") + "\n"))
	}
}
