// Package repository provides data access for the session audit log.
package repository

import (
	"context"
	"errors"

	"github.com/sebasr/gcs-service/internal/models"
)

// ErrEventNotFound is returned when an event is not found
var ErrEventNotFound = errors.New("session event not found")

// EventRepository defines the interface for audit-log data access
type EventRepository interface {
	// Record stores a session event
	Record(ctx context.Context, event *models.SessionEvent) error

	// ListRecent returns up to limit events, newest first
	ListRecent(ctx context.Context, limit int) ([]*models.SessionEvent, error)
}
