package repository

import (
	"context"

	"github.com/sebasr/gcs-service/internal/models"
)

// MockEventRepository is a mock implementation of EventRepository for testing
type MockEventRepository struct {
	RecordFunc     func(ctx context.Context, event *models.SessionEvent) error
	ListRecentFunc func(ctx context.Context, limit int) ([]*models.SessionEvent, error)
}

// NewMockEventRepository creates a new mock event repository
func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		RecordFunc: func(_ context.Context, _ *models.SessionEvent) error {
			return nil
		},
		ListRecentFunc: func(_ context.Context, _ int) ([]*models.SessionEvent, error) {
			return []*models.SessionEvent{}, nil
		},
	}
}

// Record implements EventRepository.Record
func (m *MockEventRepository) Record(ctx context.Context, event *models.SessionEvent) error {
	return m.RecordFunc(ctx, event)
}

// ListRecent implements EventRepository.ListRecent
func (m *MockEventRepository) ListRecent(ctx context.Context, limit int) ([]*models.SessionEvent, error) {
	return m.ListRecentFunc(ctx, limit)
}
