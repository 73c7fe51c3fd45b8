package services

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ecxhq/identity-be/internal/models"
	"github.com/ecxhq/identity-be/internal/websocket"
)

// EventServiceProvider defines the interface for audit event services.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, accountID *string) error
	GetRecentEvents(limit int) ([]models.Event, error)
	PurgeEventsBefore(cutoff time.Time) (int64, error)
}

// EventService persists audit events and pushes them to connected websocket
// clients.
type EventService struct {
	db  *sql.DB
	hub *websocket.Hub // nil disables live broadcasting
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, hub *websocket.Hub) *EventService {
	return &EventService{db: db, hub: hub}
}

// CreateEvent logs a new event to the database and broadcasts it.
func (s *EventService) CreateEvent(eventType, level, message string, accountID *string) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		AccountID: accountID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		"INSERT INTO events (id, type, level, message, account_id) VALUES (?, ?, ?, ?, ?)",
		event.ID, event.Type, event.Level, event.Message, event.AccountID,
	)
	if err != nil {
		return err
	}

	s.broadcast(event)
	return nil
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	rows, err := s.db.Query(
		"SELECT id, type, level, message, account_id, created_at FROM events ORDER BY rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.AccountID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// PurgeEventsBefore removes events older than the cutoff and reports how many
// rows were deleted.
func (s *EventService) PurgeEventsBefore(cutoff time.Time) (int64, error) {
	// created_at rows come from CURRENT_TIMESTAMP, so the cutoff is compared
	// in the same "YYYY-MM-DD HH:MM:SS" UTC form.
	res, err := s.db.Exec("DELETE FROM events WHERE created_at < ?", sqliteTimestamp(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// sqliteTimestamp renders t the way SQLite's CURRENT_TIMESTAMP does.
func sqliteTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

func (s *EventService) broadcast(event models.Event) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(websocket.Message{Action: "event", Payload: event})
	if err != nil {
		log.Error().Err(err).Str("event_id", event.ID).Msg("Failed to encode event for broadcast")
		return
	}
	s.hub.Publish(payload)
}
