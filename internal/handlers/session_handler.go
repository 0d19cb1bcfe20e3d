// Package handlers provides HTTP handlers for the GCS service API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/gcs-service/internal/models"
	"github.com/sebasr/gcs-service/internal/session"
)

// SessionHandler handles connection lifecycle and vehicle state requests
type SessionHandler struct {
	session  *session.Session
	recorder *EventRecorder
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(s *session.Session, recorder *EventRecorder) *SessionHandler {
	return &SessionHandler{
		session:  s,
		recorder: recorder,
	}
}

// ConnectRequest represents the connect request body
type ConnectRequest struct {
	ConnectionString string `json:"connectionString" binding:"required"`
}

// Connect establishes a session with the vehicle
// POST /api/v1/session/connect
func (h *SessionHandler) Connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	connected, err := h.session.Connect(c.Request.Context(), req.ConnectionString)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	h.recorder.Record(c, models.EventConnected, models.SeverityInfo,
		"Connected to "+req.ConnectionString, nil)

	c.JSON(http.StatusOK, gin.H{
		"connected": connected,
	})
}

// Disconnect tears the session down
// POST /api/v1/session/disconnect
func (h *SessionHandler) Disconnect(c *gin.Context) {
	if err := h.session.Disconnect(); err != nil {
		respondSessionError(c, err)
		return
	}

	h.recorder.Record(c, models.EventDisconnected, models.SeverityInfo,
		"Disconnected from vehicle", nil)

	c.JSON(http.StatusOK, gin.H{
		"message": "Disconnected successfully",
	})
}

// Status returns the current connection status snapshot
// GET /api/v1/session/status
func (h *SessionHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Status())
}

// GetVehicleInfo returns the connected vehicle's identity snapshot
// GET /api/v1/vehicle
func (h *SessionHandler) GetVehicleInfo(c *gin.Context) {
	info, err := h.session.VehicleInfo()
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// respondSessionError maps session core errors to HTTP responses
func respondSessionError(c *gin.Context, err error) {
	var outOfRange *session.OutOfRangeError
	var invalidParam *session.InvalidParameterError

	switch {
	case errors.Is(err, session.ErrInvalidFormat):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_format",
			"message": err.Error(),
		})
	case errors.As(err, &invalidParam):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": err.Error(),
		})
	case errors.As(err, &outOfRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "out_of_range",
			"message": err.Error(),
			"bound":   outOfRange.Bound,
		})
	case errors.Is(err, session.ErrAlreadyConnected):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "already_connected",
			"message": err.Error(),
		})
	case errors.Is(err, session.ErrOperationInProgress):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "operation_in_progress",
			"message": err.Error(),
		})
	case errors.Is(err, session.ErrEmergencyStop):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "emergency_stop",
			"message": err.Error(),
		})
	case errors.Is(err, session.ErrNotConnected):
		c.JSON(http.StatusPreconditionFailed, gin.H{
			"error":   "not_connected",
			"message": err.Error(),
		})
	case errors.Is(err, session.ErrHeartbeatTimeout):
		c.JSON(http.StatusPreconditionFailed, gin.H{
			"error":   "heartbeat_timeout",
			"message": err.Error(),
		})
	case errors.Is(err, session.ErrParameterNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "parameter_not_found",
			"message": err.Error(),
		})
	case errors.Is(err, session.ErrVehicleInfoUnavailable):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "vehicle_info_unavailable",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
	}
}
