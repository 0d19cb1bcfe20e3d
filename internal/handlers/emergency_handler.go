package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/gcs-service/internal/models"
	"github.com/sebasr/gcs-service/internal/session"
)

// EmergencyHandler handles emergency stop requests
type EmergencyHandler struct {
	session  *session.Session
	recorder *EventRecorder
}

// NewEmergencyHandler creates a new emergency handler
func NewEmergencyHandler(s *session.Session, recorder *EventRecorder) *EmergencyHandler {
	return &EmergencyHandler{
		session:  s,
		recorder: recorder,
	}
}

// EmergencyStop engages the emergency stop. The controller is invoked before
// anything else in this handler; recording happens after the flag is set.
// POST /api/v1/emergency-stop
func (h *EmergencyHandler) EmergencyStop(c *gin.Context) {
	h.session.EmergencyStop()

	h.recorder.Record(c, models.EventEmergencyStop, models.SeverityCritical,
		"Emergency stop engaged", nil)

	c.JSON(http.StatusOK, gin.H{
		"message": "Emergency stop engaged",
	})
}

// Rearm clears the emergency stop
// POST /api/v1/emergency-stop/rearm
func (h *EmergencyHandler) Rearm(c *gin.Context) {
	h.session.RearmEmergency()

	h.recorder.Record(c, models.EventEmergencyRearm, models.SeverityWarning,
		"Emergency stop re-armed", nil)

	c.JSON(http.StatusOK, gin.H{
		"message": "Emergency stop re-armed",
	})
}

// Status reports the emergency controller state
// GET /api/v1/emergency-stop
func (h *EmergencyHandler) Status(c *gin.Context) {
	e := h.session.Emergency()

	var lastActivation *string
	if t := e.LastActivation(); t != nil {
		s := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
		lastActivation = &s
	}

	c.JSON(http.StatusOK, gin.H{
		"active":         e.Active(),
		"lastActivation": lastActivation,
	})
}
