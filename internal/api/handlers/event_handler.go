package handlers

import (
	"net/http"
	"strconv"

	"github.com/lifetrack/lifetrack-be/internal/auth"
	"github.com/lifetrack/lifetrack-be/internal/services"
)

// EventHandler handles HTTP requests for the audit event log.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent handles the request to list the caller's recent events.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	events, err := h.service.GetRecentEvents(userID, limit)
	if err != nil {
		serviceError(w, err, "Failed to retrieve events")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}
