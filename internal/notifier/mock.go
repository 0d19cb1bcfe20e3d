package notifier

import (
	"context"
	"sync"

	"github.com/sebasr/gcs-service/internal/models"
)

// MockNotifier is a mock notifier implementation for testing.
// It stores published events in memory for verification in tests.
type MockNotifier struct {
	mu     sync.Mutex
	events []*models.SessionEvent

	// PublishErr, when set, is returned by every PublishEvent call.
	PublishErr error
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{
		events: make([]*models.SessionEvent, 0),
	}
}

// PublishEvent records the event
func (n *MockNotifier) PublishEvent(_ context.Context, event *models.SessionEvent) error {
	if n.PublishErr != nil {
		return n.PublishErr
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

// Close is a no-op for the mock notifier
func (n *MockNotifier) Close() error {
	return nil
}

// Events returns a copy of all published events
func (n *MockNotifier) Events() []*models.SessionEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	events := make([]*models.SessionEvent, len(n.events))
	copy(events, n.events)
	return events
}

// Reset clears all stored events. Useful for test cleanup.
func (n *MockNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = make([]*models.SessionEvent, 0)
}
