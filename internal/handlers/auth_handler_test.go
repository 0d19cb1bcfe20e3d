package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sebasr/gcs-service/internal/auth"
	"github.com/sebasr/gcs-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T, password string) (*AuthHandler, *auth.JWTService) {
	t.Helper()

	hash := ""
	if password != "" {
		var err error
		hash, err = auth.HashPassword(password)
		require.NoError(t, err)
	}

	cfg := &config.AuthConfig{
		JWTSecret:            "test-secret",
		JWTAccessTokenTTL:    time.Hour,
		OperatorName:         "operator",
		OperatorPasswordHash: hash,
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTAccessTokenTTL)
	handler := NewAuthHandler(cfg, jwtService)

	gin.SetMode(gin.TestMode)

	return handler, jwtService
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler, jwtService := setupAuthTest(t, "correct-horse-battery")

	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/auth/login", LoginRequest{
		Username: "operator",
		Password: "correct-horse-battery",
	})

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(3600), response["expiresIn"])

	// The issued token validates and names the operator
	claims, err := jwtService.ValidateToken(response["accessToken"].(string))
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Operator)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	handler, _ := setupAuthTest(t, "correct-horse-battery")

	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/auth/login", LoginRequest{
		Username: "operator",
		Password: "wrong-password",
	})

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
}

func TestAuthHandler_Login_WrongUsername(t *testing.T) {
	handler, _ := setupAuthTest(t, "correct-horse-battery")

	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/auth/login", LoginRequest{
		Username: "intruder",
		Password: "correct-horse-battery",
	})

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
}

func TestAuthHandler_Login_NotConfigured(t *testing.T) {
	handler, _ := setupAuthTest(t, "")

	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/auth/login", LoginRequest{
		Username: "operator",
		Password: "anything-at-all",
	})

	handler.Login(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "auth_not_configured")
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	handler, _ := setupAuthTest(t, "correct-horse-battery")

	w := httptest.NewRecorder()
	c := postJSON(w, "/api/v1/auth/login", map[string]interface{}{
		"username": "operator",
	})

	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}
