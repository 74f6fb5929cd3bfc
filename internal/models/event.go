package models

import "time"

// Event represents a loggable action or alert in the system.
type Event struct {
	ID        string    `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"` // Nullable for system-wide events
	Type      string    `json:"type"`              // e.g., "user.login", "system.alert.cpu"
	Level     string    `json:"level"`             // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
