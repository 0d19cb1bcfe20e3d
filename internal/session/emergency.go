package session

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// EmergencyController owns the system-wide emergency-stop flag. It is the
// highest-priority component: Activate touches only its own storage, shares
// no lock with any other state group, and performs no I/O before the flag
// is set. The completion target is a soft real-time budget enforced by
// measurement and logging, not by a scheduler guarantee.
type EmergencyController struct {
	budget time.Duration

	active         atomic.Bool
	lastActivation atomic.Int64 // ms since epoch, 0 when never activated

	// mu guards only the trip channel swap on re-arm. It is never held
	// across anything slower than a channel allocation.
	mu      sync.Mutex
	tripped chan struct{}
}

// NewEmergencyController creates a controller with the given latency budget
func NewEmergencyController(budget time.Duration) *EmergencyController {
	return &EmergencyController{
		budget:  budget,
		tripped: make(chan struct{}),
	}
}

// Activate sets the emergency flag. It always succeeds; exceeding the latency
// budget is a reportable soft-failure, logged and never raised. A single
// attempt only: repetition cannot reduce latency once the budget is spent.
func (e *EmergencyController) Activate() {
	start := time.Now()

	if e.active.CompareAndSwap(false, true) {
		e.mu.Lock()
		close(e.tripped)
		e.mu.Unlock()
	}

	// Timestamping is off the critical path: the flag is already visible.
	e.lastActivation.Store(time.Now().UnixMilli())

	if elapsed := time.Since(start); elapsed > e.budget {
		log.Printf("WARNING: emergency stop took %dµs (budget %dµs)",
			elapsed.Microseconds(), e.budget.Microseconds())
	}
}

// Rearm clears the flag. This is the explicit, separate re-arm action; the
// flag is never cleared implicitly by reconnect logic.
func (e *EmergencyController) Rearm() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active.CompareAndSwap(true, false) {
		e.tripped = make(chan struct{})
	}
}

// Active reports whether the emergency stop is engaged
func (e *EmergencyController) Active() bool {
	return e.active.Load()
}

// LastActivation returns the most recent activation time, or nil if the
// controller has never fired
func (e *EmergencyController) LastActivation() *time.Time {
	ms := e.lastActivation.Load()
	if ms == 0 {
		return nil
	}
	t := time.UnixMilli(ms)
	return &t
}

// Tripped returns a channel closed on activation. Long-running waits select
// on it to abort before their nominal duration.
func (e *EmergencyController) Tripped() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tripped
}

// EmergencyStop engages the emergency controller and best-effort voids any
// in-progress motor test. The flag is set before anything else happens; the
// activity guard is only touched afterwards, and a blocked disarm command
// can never delay the flag becoming visible.
func (s *Session) EmergencyStop() {
	s.emergency.Activate()

	// Best-effort: force the activity machine out of motor_test. The test
	// goroutine observes the trip channel and releases on its own; this
	// covers the window before it wakes up.
	s.activity.AbortMotorTest()

	// Disarm goes out asynchronously, after the flag is visible.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.transport.SendDisarm(ctx); err == nil {
			s.countSent()
		}
	}()
}

// RearmEmergency clears the emergency stop
func (s *Session) RearmEmergency() {
	s.emergency.Rearm()
}
