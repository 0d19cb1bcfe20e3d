package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sebasr/gcs-service/internal/models"
	"github.com/sebasr/gcs-service/internal/notifier"
	"github.com/sebasr/gcs-service/internal/repository"
	"github.com/sebasr/gcs-service/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEmergencyTest() (*EmergencyHandler, *session.Session, *notifier.MockNotifier) {
	core, _ := newTestCore()
	ntf := notifier.NewMockNotifier()
	handler := NewEmergencyHandler(core, NewEventRecorder(repository.NewMockEventRepository(), ntf))

	gin.SetMode(gin.TestMode)

	return handler, core, ntf
}

func TestEmergencyHandler_EmergencyStop(t *testing.T) {
	handler, core, ntf := setupEmergencyTest()
	connectCore(t, core)

	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/emergency-stop", nil)

	handler.EmergencyStop(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, core.Emergency().Active())

	events := ntf.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventEmergencyStop, events[0].EventType)
	assert.Equal(t, models.SeverityCritical, events[0].Severity)
}

func TestEmergencyHandler_EmergencyStop_WorksWhileDisconnected(t *testing.T) {
	handler, core, _ := setupEmergencyTest()

	// The emergency path has no connection precondition
	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/emergency-stop", nil)

	handler.EmergencyStop(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, core.Emergency().Active())
}

func TestEmergencyHandler_Rearm(t *testing.T) {
	handler, core, ntf := setupEmergencyTest()
	core.EmergencyStop()

	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/emergency-stop/rearm", nil)

	handler.Rearm(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, core.Emergency().Active())

	events := ntf.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventEmergencyRearm, events[0].EventType)
}

func TestEmergencyHandler_Status(t *testing.T) {
	handler, core, _ := setupEmergencyTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/emergency-stop", nil)

	handler.Status(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["active"])
	assert.Nil(t, response["lastActivation"])

	// After an activation the status carries the timestamp
	core.EmergencyStop()

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/emergency-stop", nil)

	handler.Status(c)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["active"])
	assert.NotNil(t, response["lastActivation"])
}
