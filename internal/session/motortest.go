package session

import (
	"context"
	"fmt"
	"time"
)

// Motor test argument limits
const (
	MaxMotorID         = 8
	MaxThrottlePercent = 100
	MaxTestDurationMS  = 5000
)

// TestMotor runs a bounded actuator test on one motor. Argument bounds are
// checked before any shared state is touched; the motor-test activity slot
// is held for the full requested duration and released unconditionally.
// An emergency stop aborts the wait before its nominal duration.
func (s *Session) TestMotor(ctx context.Context, motorID uint8, throttlePercent uint16, durationMS uint32) error {
	if motorID < 1 || motorID > MaxMotorID {
		return &InvalidParameterError{Field: "motor ID", Reason: fmt.Sprintf("must be 1-%d", MaxMotorID)}
	}
	if throttlePercent > MaxThrottlePercent {
		return &InvalidParameterError{Field: "throttle percentage", Reason: fmt.Sprintf("must be 0-%d", MaxThrottlePercent)}
	}
	if durationMS > MaxTestDurationMS {
		return &InvalidParameterError{Field: "test duration", Reason: fmt.Sprintf("must be at most %dms", MaxTestDurationMS)}
	}

	if err := s.VerifyLiveness(); err != nil {
		return err
	}

	if !s.activity.TryAcquire(ActivityMotorTest) {
		return ErrOperationInProgress
	}
	defer s.activity.Release(ActivityMotorTest)

	if err := s.transport.SendMotorTest(ctx, motorID, throttlePercent, durationMS); err != nil {
		return err
	}
	s.countSent()

	select {
	case <-time.After(time.Duration(durationMS) * time.Millisecond):
		return nil
	case <-s.emergency.Tripped():
		return ErrEmergencyStop
	case <-ctx.Done():
		return ctx.Err()
	}
}
