package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sebasr/gcs-service/internal/auth"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// OperatorKey is the context key for the authenticated operator's name
	OperatorKey ContextKey = "operator"
)

// AuthMiddleware provides authentication middleware
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Required returns a middleware that requires a valid JWT token.
// Returns 401 Unauthorized if the token is missing or invalid.
func (m *AuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.extractAndValidateToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(string(OperatorKey), claims.Operator)

		c.Next()
	}
}

// Optional returns a middleware that extracts the operator if a valid token
// is present and continues regardless
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.extractAndValidateToken(c)
		if err == nil && claims != nil {
			c.Set(string(OperatorKey), claims.Operator)
		}

		c.Next()
	}
}

// extractAndValidateToken extracts the JWT token from the request and validates it
func (m *AuthMiddleware) extractAndValidateToken(c *gin.Context) (*auth.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errors.New("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New("invalid authorization header format")
	}

	tokenString := parts[1]
	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// GetOperator retrieves the authenticated operator's name from the context
func GetOperator(c *gin.Context) (string, error) {
	operator, exists := c.Get(string(OperatorKey))
	if !exists {
		return "", errors.New("operator not authenticated")
	}

	name, ok := operator.(string)
	if !ok {
		return "", errors.New("invalid operator format")
	}

	return name, nil
}

// MustGetOperator retrieves the operator from context, panics if not found.
// Use this only in handlers protected by Required() middleware.
func MustGetOperator(c *gin.Context) string {
	operator, err := GetOperator(c)
	if err != nil {
		panic("operator not found in context - ensure Required() middleware is applied")
	}
	return operator
}
