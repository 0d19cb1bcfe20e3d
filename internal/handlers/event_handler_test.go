package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sebasr/gcs-service/internal/models"
	"github.com/sebasr/gcs-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEventTest() (*EventHandler, *repository.MockEventRepository) {
	repo := repository.NewMockEventRepository()
	handler := NewEventHandler(NewEventRecorder(repo, nil))

	gin.SetMode(gin.TestMode)

	return handler, repo
}

func TestEventHandler_ListEvents_Success(t *testing.T) {
	handler, repo := setupEventTest()

	repo.ListRecentFunc = func(_ context.Context, _ int) ([]*models.SessionEvent, error) {
		return []*models.SessionEvent{
			models.NewSessionEvent(models.EventEmergencyStop, models.SeverityCritical, "Emergency stop engaged"),
			models.NewSessionEvent(models.EventConnected, models.SeverityInfo, "Connected to udp://127.0.0.1:14550"),
		}, nil
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)

	handler.ListEvents(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["total"])
	assert.Len(t, response["events"].([]interface{}), 2)
}

func TestEventHandler_ListEvents_DefaultLimit(t *testing.T) {
	handler, repo := setupEventTest()

	var gotLimit int
	repo.ListRecentFunc = func(_ context.Context, limit int) ([]*models.SessionEvent, error) {
		gotLimit = limit
		return []*models.SessionEvent{}, nil
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)

	handler.ListEvents(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultEventLimit, gotLimit)
}

func TestEventHandler_ListEvents_LimitClamped(t *testing.T) {
	handler, repo := setupEventTest()

	var gotLimit int
	repo.ListRecentFunc = func(_ context.Context, limit int) ([]*models.SessionEvent, error) {
		gotLimit = limit
		return []*models.SessionEvent{}, nil
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/events?limit=10000", nil)

	handler.ListEvents(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, maxEventLimit, gotLimit)
}

func TestEventHandler_ListEvents_InvalidLimit(t *testing.T) {
	handler, _ := setupEventTest()

	tests := []string{"abc", "-1", "0"}
	for _, limit := range tests {
		t.Run(limit, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/events?limit="+limit, nil)

			handler.ListEvents(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "invalid_limit")
		})
	}
}

func TestEventHandler_ListEvents_NoDatabase(t *testing.T) {
	handler := NewEventHandler(NewEventRecorder(nil, nil))

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)

	handler.ListEvents(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "audit_log_unavailable")
}

func TestEventHandler_ListEvents_RepositoryError(t *testing.T) {
	handler, repo := setupEventTest()

	repo.ListRecentFunc = func(_ context.Context, _ int) ([]*models.SessionEvent, error) {
		return nil, assert.AnError
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)

	handler.ListEvents(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
