package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/gcs-service/internal/models"
	"github.com/sebasr/gcs-service/internal/session"
)

// CalibrationHandler handles sensor calibration requests
type CalibrationHandler struct {
	session  *session.Session
	recorder *EventRecorder
}

// NewCalibrationHandler creates a new calibration handler
func NewCalibrationHandler(s *session.Session, recorder *EventRecorder) *CalibrationHandler {
	return &CalibrationHandler{
		session:  s,
		recorder: recorder,
	}
}

// CalibrateAccelerometer runs the accelerometer calibration sequence.
// The request blocks for the full sampling duration.
// POST /api/v1/calibration/accelerometer
func (h *CalibrationHandler) CalibrateAccelerometer(c *gin.Context) {
	h.calibrate(c, h.session.CalibrateAccelerometer)
}

// CalibrateGyroscope runs the gyroscope calibration sequence
// POST /api/v1/calibration/gyroscope
func (h *CalibrationHandler) CalibrateGyroscope(c *gin.Context) {
	h.calibrate(c, h.session.CalibrateGyroscope)
}

func (h *CalibrationHandler) calibrate(c *gin.Context, run func(context.Context) (*models.CalibrationResult, error)) {
	result, err := run(c.Request.Context())
	if err != nil {
		respondSessionError(c, err)
		return
	}

	h.recorder.Record(c, models.EventCalibration, models.SeverityInfo,
		result.Message, map[string]interface{}{
			"sensorType": result.SensorType,
			"fitness":    result.Fitness,
		})

	c.JSON(http.StatusOK, result)
}
