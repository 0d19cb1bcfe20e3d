package models

// CalibrationResult holds the outcome of a completed sensor calibration run.
// It is returned to the caller and not persisted beyond the response.
type CalibrationResult struct {
	Success    bool      `json:"success"`
	SensorType string    `json:"sensorType"` // "Accelerometer" or "Gyroscope"
	Offsets    []float32 `json:"offsets"`    // Per-axis offsets (X, Y, Z)
	Scales     []float32 `json:"scales"`     // Per-axis scale factors (X, Y, Z)
	Fitness    float32   `json:"fitness"`    // Calibration quality, normalized [0,1]
	Message    string    `json:"message"`
}
