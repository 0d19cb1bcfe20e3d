package session

import (
	"context"

	"github.com/looplab/fsm"
)

// ActivityKind identifies one of the exclusive long-running operations
type ActivityKind string

const (
	// ActivityMotorTest is the actuator-test activity slot
	ActivityMotorTest ActivityKind = "motor_test"
	// ActivityCalibration is the sensor-calibration activity slot
	ActivityCalibration ActivityKind = "calibration"
)

// Activity guard states
const (
	StateIdle        = "idle"
	StateMotorTest   = "motor_test"
	StateCalibration = "calibration"
)

const (
	eventBeginMotorTest   = "begin_motor_test"
	eventFinishMotorTest  = "finish_motor_test"
	eventAbortMotorTest   = "abort_motor_test"
	eventBeginCalibration = "begin_calibration"
	eventEndCalibration   = "finish_calibration"
)

// ActivityGuard enforces that at most one exclusive activity runs at a time.
// The at-most-one invariant is structural: a single state machine with states
// idle, motor_test and calibration, not two independently-checked booleans.
// All transitions are atomic relative to each other.
type ActivityGuard struct {
	machine *fsm.FSM
}

// NewActivityGuard creates a guard in the idle state
func NewActivityGuard() *ActivityGuard {
	return &ActivityGuard{
		machine: fsm.NewFSM(
			StateIdle,
			fsm.Events{
				{Name: eventBeginMotorTest, Src: []string{StateIdle}, Dst: StateMotorTest},
				{Name: eventFinishMotorTest, Src: []string{StateMotorTest}, Dst: StateIdle},
				{Name: eventAbortMotorTest, Src: []string{StateMotorTest}, Dst: StateIdle},
				{Name: eventBeginCalibration, Src: []string{StateIdle}, Dst: StateCalibration},
				{Name: eventEndCalibration, Src: []string{StateCalibration}, Dst: StateIdle},
			},
			fsm.Callbacks{},
		),
	}
}

// TryAcquire attempts to take the activity slot for kind. It returns false,
// without blocking, when acquiring would violate the at-most-one invariant.
func (g *ActivityGuard) TryAcquire(kind ActivityKind) bool {
	event := eventBeginMotorTest
	if kind == ActivityCalibration {
		event = eventBeginCalibration
	}
	return g.machine.Event(context.Background(), event) == nil
}

// Release returns the slot held for kind. Releasing a slot that is not held
// is a no-op.
func (g *ActivityGuard) Release(kind ActivityKind) {
	event := eventFinishMotorTest
	if kind == ActivityCalibration {
		event = eventEndCalibration
	}
	// Invalid transitions (slot not held) are ignored.
	_ = g.machine.Event(context.Background(), event)
}

// AbortMotorTest forces the guard out of the motor_test state. Used by the
// emergency path after the emergency flag is already visible; a no-op when
// no motor test is running.
func (g *ActivityGuard) AbortMotorTest() {
	_ = g.machine.Event(context.Background(), eventAbortMotorTest)
}

// State returns the current guard state
func (g *ActivityGuard) State() string {
	return g.machine.Current()
}

// Idle reports whether no exclusive activity is running
func (g *ActivityGuard) Idle() bool {
	return g.machine.Is(StateIdle)
}

// MotorTestActive reports whether a motor test holds the slot
func (g *ActivityGuard) MotorTestActive() bool {
	return g.machine.Is(StateMotorTest)
}

// CalibrationActive reports whether a calibration holds the slot
func (g *ActivityGuard) CalibrationActive() bool {
	return g.machine.Is(StateCalibration)
}
