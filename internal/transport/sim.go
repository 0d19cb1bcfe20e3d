package transport

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sebasr/gcs-service/internal/models"
)

// ErrLinkClosed is returned when a command is sent on a closed link
var ErrLinkClosed = errors.New("telemetry link is closed")

// SimCommand records a command sent through the simulated link
type SimCommand struct {
	Name            string
	MotorID         uint8
	ThrottlePercent uint16
	DurationMS      uint32
	SensorType      string
}

// Sim is a deterministic simulated telemetry link. It completes the
// handshake with a fixed vehicle identity, emits heartbeats on a ticker,
// and records every command for verification in tests.
type Sim struct {
	mu        sync.Mutex
	connected bool
	handlers  Handlers
	commands  []SimCommand
	stopCh    chan struct{}

	// HandshakeDelay simulates the network/serial handshake duration.
	HandshakeDelay time.Duration
	// HeartbeatInterval controls the heartbeat ticker; zero disables it.
	HeartbeatInterval time.Duration
}

// NewSim creates a simulated link with a 1Hz heartbeat and no handshake delay
func NewSim() *Sim {
	return &Sim{
		HeartbeatInterval: time.Second,
	}
}

// SetHandlers implements Transport.SetHandlers
func (s *Sim) SetHandlers(h Handlers) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = h
}

// Connect implements Transport.Connect. It reports a fixed ArduPilot
// quadcopter identity after the configured handshake delay.
func (s *Sim) Connect(ctx context.Context, _ string) (*models.VehicleInfo, error) {
	if s.HandshakeDelay > 0 {
		select {
		case <-time.After(s.HandshakeDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	s.connected = true
	s.stopCh = make(chan struct{})
	interval := s.HeartbeatInterval
	stopCh := s.stopCh
	s.mu.Unlock()

	if interval > 0 {
		go s.heartbeatLoop(interval, stopCh)
	}

	return &models.VehicleInfo{
		SystemID:        1,
		ComponentID:     1,
		AutopilotType:   "ArduPilot",
		VehicleType:     "Quadcopter",
		FirmwareVersion: "4.5.0",
		Capabilities:    []string{"MISSION", "PARAM", "FENCE", "RALLY"},
		Armed:           false,
		FlightMode:      "STABILIZE",
	}, nil
}

// Close implements Transport.Close
func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}
	s.connected = false
	return nil
}

// SendMotorTest implements Transport.SendMotorTest
func (s *Sim) SendMotorTest(_ context.Context, motorID uint8, throttlePercent uint16, durationMS uint32) error {
	return s.record(SimCommand{
		Name:            "motor_test",
		MotorID:         motorID,
		ThrottlePercent: throttlePercent,
		DurationMS:      durationMS,
	})
}

// SendCalibrationStart implements Transport.SendCalibrationStart
func (s *Sim) SendCalibrationStart(_ context.Context, sensorType string) error {
	return s.record(SimCommand{Name: "calibration_start", SensorType: sensorType})
}

// SendDisarm implements Transport.SendDisarm
func (s *Sim) SendDisarm(_ context.Context) error {
	return s.record(SimCommand{Name: "disarm"})
}

// Commands returns a copy of all commands sent through the link
func (s *Sim) Commands() []SimCommand {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmds := make([]SimCommand, len(s.commands))
	copy(cmds, s.commands)
	return cmds
}

// EmitHeartbeat delivers one heartbeat to the registered handler.
// Tests use this to drive liveness deterministically.
func (s *Sim) EmitHeartbeat(at time.Time, linkQuality float32) {
	s.mu.Lock()
	h := s.handlers
	s.mu.Unlock()
	if h.OnHeartbeat != nil {
		h.OnHeartbeat(at, linkQuality)
	}
	if h.OnMessage != nil {
		h.OnMessage()
	}
}

// EmitVehicleStatus delivers one armed/flight-mode update to the
// registered handler.
func (s *Sim) EmitVehicleStatus(armed bool, flightMode string) {
	s.mu.Lock()
	h := s.handlers
	s.mu.Unlock()
	if h.OnVehicleStatus != nil {
		h.OnVehicleStatus(armed, flightMode)
	}
	if h.OnMessage != nil {
		h.OnMessage()
	}
}

func (s *Sim) record(cmd SimCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return ErrLinkClosed
	}
	s.commands = append(s.commands, cmd)
	return nil
}

func (s *Sim) heartbeatLoop(interval time.Duration, stopCh chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case t := <-ticker.C:
			s.EmitHeartbeat(t, 1.0)
		}
	}
}
