package services

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lifetrack/lifetrack-be/internal/models"
	ws "github.com/lifetrack/lifetrack-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, userID *int64) error
	GetRecentEvents(userID int64, limit int) ([]models.Event, error)
	PruneOlderThan(days int) (int64, error)
}

// EventService writes audit events and fans them out to connected websocket
// clients of the affected account.
type EventService struct {
	db  *sql.DB
	hub *ws.Hub // may be nil in tests
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, hub *ws.Hub) *EventService {
	return &EventService{db: db, hub: hub}
}

// CreateEvent logs a new event to the database and notifies subscribers.
func (s *EventService) CreateEvent(eventType, level, message string, userID *int64) error {
	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Level:   level,
		Message: message,
		UserID:  userID,
	}

	stmt, err := s.db.Prepare("INSERT INTO events (id, user_id, type, level, message) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(event.ID, event.UserID, event.Type, event.Level, event.Message); err != nil {
		return err
	}

	if s.hub != nil && userID != nil {
		payload, err := json.Marshal(ws.Message{Action: "event", Payload: event})
		if err != nil {
			log.Error().Err(err).Str("event_id", event.ID).Msg("Failed to encode event for broadcast")
			return nil
		}
		s.hub.BroadcastTo(*userID, payload)
	}
	return nil
}

// GetRecentEvents retrieves the most recent events for one account.
func (s *EventService) GetRecentEvents(userID int64, limit int) ([]models.Event, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, type, level, message, created_at FROM events WHERE user_id = ? ORDER BY created_at DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.UserID, &event.Type, &event.Level, &event.Message, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// PruneOlderThan deletes events older than the given number of days and
// returns how many rows were removed.
func (s *EventService) PruneOlderThan(days int) (int64, error) {
	res, err := s.db.Exec("DELETE FROM events WHERE created_at < datetime('now', ?)",
		fmt.Sprintf("-%d days", days))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
