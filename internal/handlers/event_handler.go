package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultEventLimit = 50
const maxEventLimit = 500

// EventHandler handles audit-log queries
type EventHandler struct {
	recorder *EventRecorder
}

// NewEventHandler creates a new event handler
func NewEventHandler(recorder *EventRecorder) *EventHandler {
	return &EventHandler{recorder: recorder}
}

// ListEvents returns recent audit events, newest first
// GET /api/v1/events?limit=n
func (h *EventHandler) ListEvents(c *gin.Context) {
	if !h.recorder.CanList() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "audit_log_unavailable",
			"message": "No audit-log database is configured",
		})
		return
	}

	limit := defaultEventLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_limit",
				"message": "limit must be a positive integer",
			})
			return
		}
		if parsed > maxEventLimit {
			parsed = maxEventLimit
		}
		limit = parsed
	}

	events, err := h.recorder.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to retrieve events",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  len(events),
	})
}
