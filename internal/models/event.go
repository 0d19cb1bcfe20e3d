package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Session event types recorded in the audit log.
const (
	EventConnected      = "connected"
	EventDisconnected   = "disconnected"
	EventParameterSet   = "parameter_set"
	EventMotorTest      = "motor_test"
	EventCalibration    = "calibration"
	EventEmergencyStop  = "emergency_stop"
	EventEmergencyRearm = "emergency_rearm"
)

// Event severities.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// SessionEvent represents an audit-log entry for a session operation
type SessionEvent struct {
	ID        uuid.UUID              `json:"id" db:"id"`
	EventType string                 `json:"eventType" db:"event_type"`
	Severity  string                 `json:"severity" db:"severity"`
	Detail    string                 `json:"detail" db:"detail"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" db:"metadata"` // Additional context (JSONB)
	CreatedAt time.Time              `json:"createdAt" db:"created_at"`
}

// NewSessionEvent creates an event with a fresh ID and timestamp
func NewSessionEvent(eventType, severity, detail string) *SessionEvent {
	return &SessionEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Severity:  severity,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}

// MetadataJSON returns the metadata as a JSON string for database storage
func (e *SessionEvent) MetadataJSON() (string, error) {
	if e.Metadata == nil {
		return "{}", nil
	}

	bytes, err := json.Marshal(e.Metadata)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// SetMetadataFromJSON parses a JSON string into the metadata map
func (e *SessionEvent) SetMetadataFromJSON(jsonStr string) error {
	if jsonStr == "" || jsonStr == "{}" {
		e.Metadata = make(map[string]interface{})
		return nil
	}

	return json.Unmarshal([]byte(jsonStr), &e.Metadata)
}
