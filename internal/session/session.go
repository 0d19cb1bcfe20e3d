package session

import (
	"sync"
	"time"

	"github.com/sebasr/gcs-service/internal/models"
	"github.com/sebasr/gcs-service/internal/transport"
)

// Config holds the tunable timing knobs of the session core
type Config struct {
	// HeartbeatTimeout is the hard liveness threshold. An operation that
	// requires the vehicle fails once now - last_heartbeat exceeds it.
	HeartbeatTimeout time.Duration

	// AccelCalibrationDuration is the nominal multi-orientation sampling
	// time for an accelerometer calibration.
	AccelCalibrationDuration time.Duration

	// GyroCalibrationDuration is the nominal stationary sampling time for
	// a gyroscope calibration.
	GyroCalibrationDuration time.Duration

	// EmergencyBudget is the soft real-time completion target for
	// EmergencyStop. Exceeding it is logged, never raised.
	EmergencyBudget time.Duration
}

// DefaultConfig returns the production timing configuration
func DefaultConfig() Config {
	return Config{
		HeartbeatTimeout:         5 * time.Second,
		AccelCalibrationDuration: 2 * time.Second,
		GyroCalibrationDuration:  1 * time.Second,
		EmergencyBudget:          time.Millisecond,
	}
}

// Session is the owned aggregate for all vehicle session state. Each logical
// state group is synchronized independently so callers take only the locks
// their operation needs; the emergency cell shares no lock with anything.
type Session struct {
	cfg       Config
	transport transport.Transport

	// lifecycleMu serializes Connect and Disconnect so two concurrent
	// connects cannot both pass the already-connected check. Read-only
	// state access never takes it.
	lifecycleMu sync.Mutex

	statusMu sync.RWMutex
	status   models.ConnectionStatus

	vehicleMu sync.RWMutex
	vehicle   *models.VehicleInfo

	paramsMu sync.RWMutex
	params   map[string]models.Parameter

	activity  *ActivityGuard
	emergency *EmergencyController

	now func() time.Time // injectable clock for tests
}

// New creates a disconnected session core around the given telemetry link.
// Link event callbacks are registered immediately.
func New(t transport.Transport, cfg Config) *Session {
	s := &Session{
		cfg:       cfg,
		transport: t,
		status:    models.NewConnectionStatus(),
		params:    make(map[string]models.Parameter),
		activity:  NewActivityGuard(),
		emergency: NewEmergencyController(cfg.EmergencyBudget),
		now:       time.Now,
	}

	t.SetHandlers(transport.Handlers{
		OnHeartbeat:     s.handleHeartbeat,
		OnVehicleStatus: s.handleVehicleStatus,
		OnMessage:       s.handleMessage,
	})

	return s
}

// Activity returns the activity guard, primarily for observability
func (s *Session) Activity() *ActivityGuard {
	return s.activity
}

// Emergency returns the emergency safety controller
func (s *Session) Emergency() *EmergencyController {
	return s.emergency
}
