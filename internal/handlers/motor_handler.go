package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/gcs-service/internal/models"
	"github.com/sebasr/gcs-service/internal/session"
)

// MotorHandler handles actuator test requests
type MotorHandler struct {
	session  *session.Session
	recorder *EventRecorder
}

// NewMotorHandler creates a new motor handler
func NewMotorHandler(s *session.Session, recorder *EventRecorder) *MotorHandler {
	return &MotorHandler{
		session:  s,
		recorder: recorder,
	}
}

// MotorTestRequest represents the motor test request body
type MotorTestRequest struct {
	MotorID         uint8  `json:"motorId"`
	ThrottlePercent uint16 `json:"throttlePercent"`
	DurationMS      uint32 `json:"durationMs"`
}

// TestMotor runs a bounded actuator test. The request blocks for the full
// test duration unless the emergency path aborts it.
// POST /api/v1/motors/test
func (h *MotorHandler) TestMotor(c *gin.Context) {
	var req MotorTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.session.TestMotor(c.Request.Context(), req.MotorID, req.ThrottlePercent, req.DurationMS); err != nil {
		respondSessionError(c, err)
		return
	}

	h.recorder.Record(c, models.EventMotorTest, models.SeverityInfo,
		"Motor test completed", map[string]interface{}{
			"motorId":         req.MotorID,
			"throttlePercent": req.ThrottlePercent,
			"durationMs":      req.DurationMS,
		})

	c.JSON(http.StatusOK, gin.H{
		"message": "Motor test completed successfully",
	})
}
