package session

import (
	"context"
	"strings"
	"time"

	"github.com/sebasr/gcs-service/internal/models"
)

// Connect validates the connection string, performs the link handshake, and
// populates the session state. The handshake runs outside all state locks so
// concurrent read-only access is never blocked by a slow connect.
func (s *Session) Connect(ctx context.Context, connectionString string) (bool, error) {
	if !validConnectionString(connectionString) {
		return false, ErrInvalidFormat
	}

	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	s.statusMu.RLock()
	connected := s.status.Connected
	s.statusMu.RUnlock()
	if connected {
		return false, ErrAlreadyConnected
	}

	info, err := s.transport.Connect(ctx, connectionString)
	if err != nil {
		return false, err
	}

	now := s.now().UnixMilli()
	s.statusMu.Lock()
	s.status.Connected = true
	s.status.ConnectionString = &connectionString
	s.status.LastHeartbeat = &now
	s.status.LinkQuality = 1.0
	s.statusMu.Unlock()

	s.vehicleMu.Lock()
	s.vehicle = info
	s.vehicleMu.Unlock()

	s.paramsMu.Lock()
	s.params = models.DefaultParameters()
	s.paramsMu.Unlock()

	return true, nil
}

// Disconnect tears the session down. It is rejected while a motor test or
// calibration holds the activity slot; parameter state is reset here and
// nowhere else.
func (s *Session) Disconnect() error {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if !s.activity.Idle() {
		return ErrOperationInProgress
	}

	s.statusMu.Lock()
	if !s.status.Connected {
		s.statusMu.Unlock()
		return ErrNotConnected
	}
	// Connected goes false first so liveness-gated readers fail fast while
	// the remaining groups are cleared.
	s.status = models.NewConnectionStatus()
	s.statusMu.Unlock()

	s.vehicleMu.Lock()
	s.vehicle = nil
	s.vehicleMu.Unlock()

	s.paramsMu.Lock()
	s.params = make(map[string]models.Parameter)
	s.paramsMu.Unlock()

	return s.transport.Close()
}

// VerifyLiveness checks the precondition for every operation that requires
// an active vehicle. The heartbeat timeout is evaluated lazily here; there is
// no background timer that forcibly disconnects.
func (s *Session) VerifyLiveness() error {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()

	if !s.status.Connected {
		return ErrNotConnected
	}

	if s.status.LastHeartbeat != nil {
		if s.now().UnixMilli()-*s.status.LastHeartbeat > s.cfg.HeartbeatTimeout.Milliseconds() {
			return ErrHeartbeatTimeout
		}
	}

	return nil
}

// Status returns a snapshot copy of the connection status
func (s *Session) Status() models.ConnectionStatus {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()

	status := s.status
	if s.status.ConnectionString != nil {
		cs := *s.status.ConnectionString
		status.ConnectionString = &cs
	}
	if s.status.LastHeartbeat != nil {
		hb := *s.status.LastHeartbeat
		status.LastHeartbeat = &hb
	}
	return status
}

// handleHeartbeat is the transport heartbeat callback
func (s *Session) handleHeartbeat(at time.Time, linkQuality float32) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()

	if !s.status.Connected {
		return
	}
	ms := at.UnixMilli()
	s.status.LastHeartbeat = &ms
	s.status.LinkQuality = linkQuality
}

// handleVehicleStatus is the telemetry ingestion callback for armed state
// and flight mode updates
func (s *Session) handleVehicleStatus(armed bool, flightMode string) {
	s.vehicleMu.Lock()
	defer s.vehicleMu.Unlock()

	if s.vehicle == nil {
		return
	}
	s.vehicle.Armed = armed
	s.vehicle.FlightMode = flightMode
}

// handleMessage is the per-message link counter callback
func (s *Session) handleMessage() {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.MessagesReceived++
}

// countSent bumps the sent-message counter after a command goes out
func (s *Session) countSent() {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.MessagesSent++
}

// validConnectionString accepts the recognized transport shapes:
// serial device path with baud suffix (/dev/ttyUSB0:57600, COM3:115200),
// udp://host:port, and tcp://host:port.
func validConnectionString(connStr string) bool {
	if strings.HasPrefix(connStr, "udp://") || strings.HasPrefix(connStr, "tcp://") {
		return strings.Contains(connStr[6:], ":") && len(connStr) > 10
	}

	if strings.HasPrefix(connStr, "/dev/") || strings.HasPrefix(connStr, "COM") {
		return strings.Contains(connStr, ":")
	}

	return false
}
