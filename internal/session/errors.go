// Package session implements the vehicle session and safety-state core:
// connection lifecycle, vehicle and parameter state, mutually-exclusive
// motor test and calibration sequences, and the emergency-stop fast path.
package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat is returned when a connection string does not match
	// a recognized transport shape
	ErrInvalidFormat = errors.New("invalid connection string format")

	// ErrAlreadyConnected is returned when connect is called on an active session
	ErrAlreadyConnected = errors.New("already connected to a vehicle")

	// ErrNotConnected is returned when an operation requires an active session
	ErrNotConnected = errors.New("not connected to a vehicle")

	// ErrHeartbeatTimeout is returned when the vehicle has not been heard
	// from within the heartbeat timeout window
	ErrHeartbeatTimeout = errors.New("connection lost (heartbeat timeout)")

	// ErrOperationInProgress is returned when an exclusive activity slot is
	// already held by a motor test or calibration
	ErrOperationInProgress = errors.New("operation already in progress")

	// ErrParameterNotFound is returned when setting an unknown parameter
	ErrParameterNotFound = errors.New("parameter not found")

	// ErrVehicleInfoUnavailable is returned when no vehicle identity snapshot
	// exists, which can occur only before the handshake completes
	ErrVehicleInfoUnavailable = errors.New("vehicle info not available")

	// ErrEmergencyStop is returned by a motor test aborted by the emergency path
	ErrEmergencyStop = errors.New("aborted by emergency stop")

	// ErrStorageAccessFailure is returned when underlying state storage is
	// corrupted. Fatal to the call, never to the process.
	ErrStorageAccessFailure = errors.New("state storage access failure")
)

// OutOfRangeError reports a parameter write that violates a bound.
// The violated bound is included so the caller can surface it.
type OutOfRangeError struct {
	ParamID string
	Value   float32
	Bound   float32
	Min     bool // true if the minimum bound was violated
}

func (e *OutOfRangeError) Error() string {
	if e.Min {
		return fmt.Sprintf("value %g for %s is below minimum %g", e.Value, e.ParamID, e.Bound)
	}
	return fmt.Sprintf("value %g for %s is above maximum %g", e.Value, e.ParamID, e.Bound)
}

// InvalidParameterError reports a motor test argument outside its allowed range
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
