package handlers

import (
	"net/http"

	"github.com/lifetrack/lifetrack-be/internal/monitoring"
)

// StatusHandler reports the host resource snapshot kept by the stat updater.
type StatusHandler struct {
	stats *monitoring.StatUpdater
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(stats *monitoring.StatUpdater) *StatusHandler {
	return &StatusHandler{stats: stats}
}

// Get handles the request for the current runtime status.
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Latest())
}
