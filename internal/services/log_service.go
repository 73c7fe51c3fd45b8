package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// LogServiceProvider defines the interface for the persisted request log.
type LogServiceProvider interface {
	Append(line string) error
	GetAllLines() ([]string, error)
	PurgeLogsBefore(cutoff time.Time) (int64, error)
}

// LogService stores one row per handled HTTP request.
type LogService struct {
	db *sql.DB
}

// NewLogService creates a new LogService.
func NewLogService(db *sql.DB) *LogService {
	return &LogService{db: db}
}

// Append persists one request-log line.
func (s *LogService) Append(line string) error {
	_, err := s.db.Exec("INSERT INTO request_logs (id, line) VALUES (?, ?)", uuid.New().String(), line)
	return err
}

// GetAllLines returns every stored line in insertion order.
func (s *LogService) GetAllLines() ([]string, error) {
	rows, err := s.db.Query("SELECT line FROM request_logs ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// PurgeLogsBefore removes lines older than the cutoff and reports how many
// rows were deleted.
func (s *LogService) PurgeLogsBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM request_logs WHERE created_at < ?", sqliteTimestamp(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
