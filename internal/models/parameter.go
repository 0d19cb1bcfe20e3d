package models

// Parameter represents a named, bounded numeric configuration value on the vehicle
type Parameter struct {
	ID          string   `json:"id"`                    // Unique parameter key, e.g. "THR_MIN"
	Value       float32  `json:"value"`                 // Current value
	ParamType   string   `json:"paramType"`             // Wire representation width (INT16, INT32, FLOAT)
	Description *string  `json:"description,omitempty"` // Human-readable description
	MinValue    *float32 `json:"minValue,omitempty"`    // Lower bound, if any
	MaxValue    *float32 `json:"maxValue,omitempty"`    // Upper bound, if any
	Units       *string  `json:"units,omitempty"`       // Unit label, e.g. "PWM"
}

// InBounds reports whether value satisfies the parameter's bounds.
// A nil bound is unconstrained.
func (p *Parameter) InBounds(value float32) bool {
	if p.MinValue != nil && value < *p.MinValue {
		return false
	}
	if p.MaxValue != nil && value > *p.MaxValue {
		return false
	}
	return true
}

// DefaultParameters returns the parameter set loaded on a fresh connection,
// keyed by parameter ID.
func DefaultParameters() map[string]Parameter {
	return map[string]Parameter{
		"ARMING_CHECK": {
			ID:          "ARMING_CHECK",
			Value:       1.0,
			ParamType:   "INT32",
			Description: stringPtr("Arming check bitmask"),
			MinValue:    float32Ptr(0.0),
			MaxValue:    float32Ptr(65535.0),
		},
		"THR_MIN": {
			ID:          "THR_MIN",
			Value:       130.0,
			ParamType:   "INT16",
			Description: stringPtr("Minimum throttle PWM"),
			MinValue:    float32Ptr(0.0),
			MaxValue:    float32Ptr(1000.0),
			Units:       stringPtr("PWM"),
		},
		"ANGLE_MAX": {
			ID:          "ANGLE_MAX",
			Value:       4500.0,
			ParamType:   "INT16",
			Description: stringPtr("Maximum lean angle"),
			MinValue:    float32Ptr(1000.0),
			MaxValue:    float32Ptr(8000.0),
			Units:       stringPtr("centidegrees"),
		},
		"BATT_CAPACITY": {
			ID:          "BATT_CAPACITY",
			Value:       5000.0,
			ParamType:   "INT32",
			Description: stringPtr("Battery capacity"),
			MinValue:    float32Ptr(0.0),
			MaxValue:    float32Ptr(50000.0),
			Units:       stringPtr("mAh"),
		},
	}
}

func stringPtr(s string) *string   { return &s }
func float32Ptr(f float32) *float32 { return &f }
