package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/gcs-service/internal/models"
	"github.com/sebasr/gcs-service/internal/session"
)

// ParameterHandler handles vehicle parameter registry requests
type ParameterHandler struct {
	session  *session.Session
	recorder *EventRecorder
}

// NewParameterHandler creates a new parameter handler
func NewParameterHandler(s *session.Session, recorder *EventRecorder) *ParameterHandler {
	return &ParameterHandler{
		session:  s,
		recorder: recorder,
	}
}

// SetParameterRequest represents the parameter update request body
type SetParameterRequest struct {
	Value *float32 `json:"value" binding:"required"`
}

// ListParameters returns a snapshot of the parameter registry
// GET /api/v1/parameters
func (h *ParameterHandler) ListParameters(c *gin.Context) {
	params, err := h.session.ListParameters()
	if err != nil {
		respondSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"parameters": params,
		"total":      len(params),
	})
}

// SetParameter updates one parameter value
// PUT /api/v1/parameters/:id
func (h *ParameterHandler) SetParameter(c *gin.Context) {
	paramID := c.Param("id")

	var req SetParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.session.SetParameter(paramID, *req.Value); err != nil {
		respondSessionError(c, err)
		return
	}

	h.recorder.Record(c, models.EventParameterSet, models.SeverityInfo,
		"Parameter "+paramID+" updated", map[string]interface{}{
			"paramId": paramID,
			"value":   *req.Value,
		})

	c.JSON(http.StatusOK, gin.H{
		"message": "Parameter updated successfully",
	})
}
