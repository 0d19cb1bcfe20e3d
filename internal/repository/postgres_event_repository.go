package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/sebasr/gcs-service/internal/models"
)

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	db *sql.DB
}

// NewPostgresEventRepository creates a new PostgreSQL event repository
func NewPostgresEventRepository(db *sql.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

// Record stores a session event
func (r *PostgresEventRepository) Record(ctx context.Context, event *models.SessionEvent) error {
	query := `
		INSERT INTO session_events (
			id, event_type, severity, detail, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	var metadataJSON []byte
	var err error
	if event.Metadata != nil {
		metadataJSON, err = json.Marshal(event.Metadata)
		if err != nil {
			return err
		}
	}

	_, err = r.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.EventType,
		event.Severity,
		event.Detail,
		metadataJSON,
		event.CreatedAt,
	)

	return err
}

// ListRecent returns up to limit events, newest first
func (r *PostgresEventRepository) ListRecent(ctx context.Context, limit int) ([]*models.SessionEvent, error) {
	query := `
		SELECT id, event_type, severity, detail, metadata, created_at
		FROM session_events
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*models.SessionEvent, 0)
	for rows.Next() {
		var event models.SessionEvent
		var metadataJSON []byte

		if err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.Severity,
			&event.Detail,
			&metadataJSON,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(metadataJSON) > 0 {
			if err := event.SetMetadataFromJSON(string(metadataJSON)); err != nil {
				return nil, err
			}
		}

		events = append(events, &event)
	}

	return events, rows.Err()
}
