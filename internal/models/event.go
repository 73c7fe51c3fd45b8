package models

import "time"

// Event represents an auditable action in the system.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g. "account.register", "auth.login.fail"
	Level     string    `json:"level"` // e.g. "info", "warn", "error"
	Message   string    `json:"message"`
	AccountID *string   `json:"accountId,omitempty"` // Nullable for system-wide events
	CreatedAt time.Time `json:"createdAt"`
}
