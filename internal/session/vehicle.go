package session

import "github.com/sebasr/gcs-service/internal/models"

// VehicleInfo returns a copy of the current vehicle identity snapshot.
// It is absent only pre-connect or before the handshake completes.
func (s *Session) VehicleInfo() (*models.VehicleInfo, error) {
	if err := s.VerifyLiveness(); err != nil {
		return nil, err
	}

	s.vehicleMu.RLock()
	defer s.vehicleMu.RUnlock()

	if s.vehicle == nil {
		return nil, ErrVehicleInfoUnavailable
	}

	info := *s.vehicle
	info.Capabilities = append([]string(nil), s.vehicle.Capabilities...)
	return &info, nil
}
