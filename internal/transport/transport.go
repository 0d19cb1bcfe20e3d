// Package transport provides the telemetry-link collaborator for the GCS service.
package transport

import (
	"context"
	"time"

	"github.com/sebasr/gcs-service/internal/models"
)

// Handlers carries the callbacks the session core registers to consume
// link events. Any callback may be nil.
type Handlers struct {
	// OnHeartbeat is invoked for each heartbeat received from the vehicle,
	// with the receive time and the current link quality estimate.
	OnHeartbeat func(at time.Time, linkQuality float32)

	// OnVehicleStatus is invoked when the vehicle reports a change to its
	// armed state or flight mode.
	OnVehicleStatus func(armed bool, flightMode string)

	// OnMessage is invoked once per telemetry message received, for
	// link counters.
	OnMessage func()
}

// Transport defines the interface to the telemetry link.
// Implementations include a real MAVLink link in production and Sim for
// testing; the session core never sees wire encoding.
type Transport interface {
	// Connect performs the link handshake and returns the identity snapshot
	// reported by the vehicle. The connection string has already been
	// validated by the caller.
	Connect(ctx context.Context, connectionString string) (*models.VehicleInfo, error)

	// Close tears the link down. Safe to call when not connected.
	Close() error

	// SetHandlers registers event callbacks. Must be called before Connect.
	SetHandlers(h Handlers)

	// SendMotorTest issues the actuator test command for one motor.
	SendMotorTest(ctx context.Context, motorID uint8, throttlePercent uint16, durationMS uint32) error

	// SendCalibrationStart announces the start of a calibration sequence
	// for the given sensor type.
	SendCalibrationStart(ctx context.Context, sensorType string) error

	// SendDisarm issues an immediate disarm. Used best-effort after an
	// emergency stop; never called on the emergency critical path.
	SendDisarm(ctx context.Context) error
}
