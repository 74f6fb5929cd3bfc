package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/lifetrack/lifetrack-be/internal/services"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// serviceError maps service sentinel errors to HTTP responses. Unclassified
// failures become an opaque 500; the cause is logged, never sent to the
// caller.
func serviceError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, services.ErrConflict):
		http.Error(w, "Already exists", http.StatusConflict)
	default:
		log.Error().Err(err).Msg(logMsg)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
