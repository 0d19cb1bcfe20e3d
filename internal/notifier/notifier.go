// Package notifier publishes session events to external subscribers.
package notifier

import (
	"context"

	"github.com/sebasr/gcs-service/internal/models"
)

// Notifier defines the interface for publishing session events.
// Implementations include MQTT for production, Console for development and
// Mock for testing.
type Notifier interface {
	// PublishEvent publishes one session event. Best-effort: callers treat
	// failures as non-fatal.
	PublishEvent(ctx context.Context, event *models.SessionEvent) error

	// Close releases any underlying connection. Safe to call more than once.
	Close() error
}
