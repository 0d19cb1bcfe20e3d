package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/gcs-service/internal/middleware"
	"github.com/sebasr/gcs-service/internal/models"
	"github.com/sebasr/gcs-service/internal/notifier"
	"github.com/sebasr/gcs-service/internal/repository"
)

// EventRecorder writes audit-log entries and publishes them to the notifier.
// Both sinks are optional and best-effort: a recording failure is logged and
// never turns a successful operation into a failed one.
type EventRecorder struct {
	repo repository.EventRepository // nil when no database is configured
	ntf  notifier.Notifier          // nil when no notifier is configured
}

// NewEventRecorder creates a recorder over the given sinks; either may be nil
func NewEventRecorder(repo repository.EventRepository, ntf notifier.Notifier) *EventRecorder {
	return &EventRecorder{repo: repo, ntf: ntf}
}

// Record stores and publishes one session event. The authenticated operator,
// if any, is attached to the event metadata.
func (r *EventRecorder) Record(c *gin.Context, eventType, severity, detail string, metadata map[string]interface{}) {
	if r == nil || (r.repo == nil && r.ntf == nil) {
		return
	}

	event := models.NewSessionEvent(eventType, severity, detail)
	event.Metadata = metadata

	if operator, err := middleware.GetOperator(c); err == nil {
		if event.Metadata == nil {
			event.Metadata = make(map[string]interface{})
		}
		event.Metadata["operator"] = operator
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if r.repo != nil {
		if err := r.repo.Record(ctx, event); err != nil {
			log.Printf("Failed to record session event %s: %v", eventType, err)
		}
	}
	if r.ntf != nil {
		if err := r.ntf.PublishEvent(ctx, event); err != nil {
			log.Printf("Failed to publish session event %s: %v", eventType, err)
		}
	}
}

// CanList reports whether an audit log is available to query
func (r *EventRecorder) CanList() bool {
	return r != nil && r.repo != nil
}

// ListRecent returns up to limit audit events, newest first
func (r *EventRecorder) ListRecent(ctx context.Context, limit int) ([]*models.SessionEvent, error) {
	return r.repo.ListRecent(ctx, limit)
}
