package notifier

import (
	"context"
	"log"

	"github.com/sebasr/gcs-service/internal/models"
)

// ConsoleNotifier logs session events to the console.
// This is useful for local development and testing.
type ConsoleNotifier struct{}

// NewConsoleNotifier creates a new console-based notifier
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

// PublishEvent logs the event to the console
func (n *ConsoleNotifier) PublishEvent(_ context.Context, event *models.SessionEvent) error {
	log.Printf("[event] %s (%s): %s", event.EventType, event.Severity, event.Detail)
	return nil
}

// Close is a no-op for the console notifier
func (n *ConsoleNotifier) Close() error {
	return nil
}
