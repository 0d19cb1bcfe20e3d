package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sebasr/gcs-service/internal/middleware"
	"github.com/sebasr/gcs-service/internal/models"
	"github.com/sebasr/gcs-service/internal/notifier"
	"github.com/sebasr/gcs-service/internal/repository"
	"github.com/sebasr/gcs-service/internal/session"
	"github.com/sebasr/gcs-service/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConnString = "udp://127.0.0.1:14550"

// newTestCore builds a session core over a simulated link with durations
// short enough for handler tests.
func newTestCore() (*session.Session, *transport.Sim) {
	link := transport.NewSim()
	link.HeartbeatInterval = 0

	s := session.New(link, session.Config{
		HeartbeatTimeout:         5 * time.Second,
		AccelCalibrationDuration: 30 * time.Millisecond,
		GyroCalibrationDuration:  15 * time.Millisecond,
		EmergencyBudget:          time.Millisecond,
	})
	return s, link
}

func setupSessionTest() (*SessionHandler, *session.Session, *repository.MockEventRepository, *notifier.MockNotifier) {
	core, _ := newTestCore()
	repo := repository.NewMockEventRepository()
	ntf := notifier.NewMockNotifier()
	handler := NewSessionHandler(core, NewEventRecorder(repo, ntf))

	gin.SetMode(gin.TestMode)

	return handler, core, repo, ntf
}

// postJSON builds a test context carrying a JSON body and an authenticated
// operator.
func postJSON(w *httptest.ResponseRecorder, path string, body interface{}) *gin.Context {
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	c.Request = httptest.NewRequest(http.MethodPost, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(string(middleware.OperatorKey), "operator")
	return c
}

func connectCore(t *testing.T, core *session.Session) {
	t.Helper()
	_, err := core.Connect(context.Background(), testConnString)
	require.NoError(t, err)
}

func TestSessionHandler_Connect_Success(t *testing.T) {
	handler, _, repo, ntf := setupSessionTest()

	var recorded *models.SessionEvent
	repo.RecordFunc = func(_ context.Context, event *models.SessionEvent) error {
		recorded = event
		return nil
	}

	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/session/connect", ConnectRequest{ConnectionString: testConnString})

	handler.Connect(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["connected"])

	// Audit event carries the operator from the request context
	require.NotNil(t, recorded)
	assert.Equal(t, models.EventConnected, recorded.EventType)
	assert.Equal(t, "operator", recorded.Metadata["operator"])
	require.Len(t, ntf.Events(), 1)
}

func TestSessionHandler_Connect_InvalidBody(t *testing.T) {
	handler, _, _, _ := setupSessionTest()

	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/session/connect", map[string]interface{}{})

	handler.Connect(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}

func TestSessionHandler_Connect_InvalidFormat(t *testing.T) {
	handler, _, _, _ := setupSessionTest()

	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/session/connect", ConnectRequest{ConnectionString: "http://example.com:80"})

	handler.Connect(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_format")
}

func TestSessionHandler_Connect_AlreadyConnected(t *testing.T) {
	handler, core, _, _ := setupSessionTest()
	connectCore(t, core)

	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/session/connect", ConnectRequest{ConnectionString: testConnString})

	handler.Connect(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already_connected")
}

func TestSessionHandler_Disconnect_Success(t *testing.T) {
	handler, core, repo, _ := setupSessionTest()
	connectCore(t, core)

	var recorded *models.SessionEvent
	repo.RecordFunc = func(_ context.Context, event *models.SessionEvent) error {
		recorded = event
		return nil
	}

	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/session/disconnect", nil)

	handler.Disconnect(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, core.Status().Connected)
	require.NotNil(t, recorded)
	assert.Equal(t, models.EventDisconnected, recorded.EventType)
}

func TestSessionHandler_Disconnect_NotConnected(t *testing.T) {
	handler, _, _, _ := setupSessionTest()

	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/session/disconnect", nil)

	handler.Disconnect(c)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Contains(t, w.Body.String(), "not_connected")
}

func TestSessionHandler_Status(t *testing.T) {
	handler, core, _, _ := setupSessionTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/session/status", nil)

	handler.Status(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var status models.ConnectionStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(t, status.Connected)
	assert.Nil(t, status.ConnectionString)

	// After connecting, the snapshot carries the connection string
	connectCore(t, core)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/session/status", nil)

	handler.Status(c)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Connected)
	require.NotNil(t, status.ConnectionString)
	assert.Equal(t, testConnString, *status.ConnectionString)
}

func TestSessionHandler_GetVehicleInfo_Success(t *testing.T) {
	handler, core, _, _ := setupSessionTest()
	connectCore(t, core)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/vehicle", nil)

	handler.GetVehicleInfo(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var info models.VehicleInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "ArduPilot", info.AutopilotType)
	assert.Equal(t, "Quadcopter", info.VehicleType)
}

func TestSessionHandler_GetVehicleInfo_NotConnected(t *testing.T) {
	handler, _, _, _ := setupSessionTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/vehicle", nil)

	handler.GetVehicleInfo(c)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Contains(t, w.Body.String(), "not_connected")
}

func TestEventRecorder_NilSinksAreSafe(t *testing.T) {
	recorder := NewEventRecorder(nil, nil)

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	// Must not panic with no sinks configured
	recorder.Record(c, models.EventConnected, models.SeverityInfo, "detail", nil)
	assert.False(t, recorder.CanList())
}

func TestEventRecorder_RepositoryFailureDoesNotPropagate(t *testing.T) {
	repo := repository.NewMockEventRepository()
	repo.RecordFunc = func(_ context.Context, _ *models.SessionEvent) error {
		return assert.AnError
	}
	recorder := NewEventRecorder(repo, nil)

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	// Best-effort: the failure is logged and swallowed
	recorder.Record(c, models.EventConnected, models.SeverityInfo, "detail", nil)
}
