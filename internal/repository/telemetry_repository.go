package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/apperrors"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/model"
)

// defaultEventLimit bounds telemetry listings when no limit is given.
const defaultEventLimit = 100

// TelemetryRepository provides data access methods for the fetch_telemetry
// table, which records one row per orchestrator state transition.
type TelemetryRepository struct {
	db *sql.DB
}

// NewTelemetryRepository creates a new TelemetryRepository with the provided database connection.
func NewTelemetryRepository(db *sql.DB) *TelemetryRepository {
	return &TelemetryRepository{db: db}
}

// InsertEvent stores a single fetch event. A missing ID or timestamp is
// filled in here so callers can pass bare transition data.
func (r *TelemetryRepository) InsertEvent(event model.FetchEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `
          INSERT INTO fetch_telemetry
              (id, request_id, from_state, to_state, attempt, channel, error_kind, error_message, created_at)
          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
      `

	_, err := r.db.Exec(query,
		event.ID,
		event.RequestID,
		event.FromState,
		event.ToState,
		event.Attempt,
		event.Channel,
		nullable(event.ErrorKind),
		nullable(event.ErrorMessage),
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToRecordFetchEvent, err)
	}

	return nil
}

// GetEvents retrieves fetch events matching the filter, newest first.
// Returns an empty slice when nothing matches.
func (r *TelemetryRepository) GetEvents(filter model.FetchEventFilter) ([]model.FetchEvent, error) {
	query := `
          SELECT id, request_id, from_state, to_state, attempt, channel, error_kind, error_message, created_at
          FROM fetch_telemetry
          WHERE 1=1
      `
	var args []any

	if filter.RequestID != "" {
		query += " AND request_id = ?"
		args = append(args, filter.RequestID)
	}

	if filter.ToState != "" {
		query += " AND to_state = ?"
		args = append(args, filter.ToState)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultEventLimit
	}
	query += " ORDER BY created_at DESC, id LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fetch_telemetry table: %w", err)
	}
	defer rows.Close()

	events := []model.FetchEvent{}

	for rows.Next() {
		var event model.FetchEvent
		var errorKind, errorMessage sql.NullString

		err := rows.Scan(
			&event.ID,
			&event.RequestID,
			&event.FromState,
			&event.ToState,
			&event.Attempt,
			&event.Channel,
			&errorKind,
			&errorMessage,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fetch_telemetry results: %w", err)
		}

		event.ErrorKind = errorKind.String
		event.ErrorMessage = errorMessage.String

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fetch_telemetry table: %w", err)
	}

	return events, nil
}

// DeleteEventsBefore purges events created strictly before the cutoff and
// reports how many rows were removed.
func (r *TelemetryRepository) DeleteEventsBefore(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec("DELETE FROM fetch_telemetry WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete fetch events: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted fetch events: %w", err)
	}

	return deleted, nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
