package handlers

import (
	"net/http"

	"github.com/ecxhq/identity-be/internal/monitoring"
)

// StatusHandler serves a host status snapshot.
type StatusHandler struct{}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// Get returns current host uptime, CPU and memory figures.
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, monitoring.CollectStatus())
}
