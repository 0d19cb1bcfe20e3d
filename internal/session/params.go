package session

import "github.com/sebasr/gcs-service/internal/models"

// ListParameters returns a snapshot copy of the parameter registry.
// Order is not significant.
func (s *Session) ListParameters() ([]models.Parameter, error) {
	if err := s.VerifyLiveness(); err != nil {
		return nil, err
	}

	s.paramsMu.RLock()
	defer s.paramsMu.RUnlock()

	params := make([]models.Parameter, 0, len(s.params))
	for _, p := range s.params {
		params = append(params, p)
	}
	return params, nil
}

// SetParameter validates and commits a parameter write. The check and the
// update happen under one write lock so no other writer can interleave a
// conflicting update to the same key between validation and commit.
func (s *Session) SetParameter(id string, value float32) error {
	if err := s.VerifyLiveness(); err != nil {
		return err
	}

	s.paramsMu.Lock()
	defer s.paramsMu.Unlock()

	param, ok := s.params[id]
	if !ok {
		return ErrParameterNotFound
	}

	if param.MinValue != nil && value < *param.MinValue {
		return &OutOfRangeError{ParamID: id, Value: value, Bound: *param.MinValue, Min: true}
	}
	if param.MaxValue != nil && value > *param.MaxValue {
		return &OutOfRangeError{ParamID: id, Value: value, Bound: *param.MaxValue, Min: false}
	}

	param.Value = value
	s.params[id] = param
	return nil
}
