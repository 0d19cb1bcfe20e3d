package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/gcs-service/internal/auth"
	"github.com/sebasr/gcs-service/internal/config"
)

// AuthHandler handles operator authentication requests
type AuthHandler struct {
	cfg        *config.AuthConfig
	jwtService *auth.JWTService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg *config.AuthConfig, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		cfg:        cfg,
		jwtService: jwtService,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates the operator and issues an access token
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	if h.cfg.OperatorPasswordHash == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "auth_not_configured",
			"message": "Operator credentials are not configured",
		})
		return
	}

	if req.Username != h.cfg.OperatorName || !auth.VerifyPassword(req.Password, h.cfg.OperatorPasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_credentials",
			"message": "Invalid username or password",
		})
		return
	}

	token, err := h.jwtService.GenerateAccessToken(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to generate access token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"expiresIn":   int(h.jwtService.GetAccessTokenTTL().Seconds()),
	})
}
