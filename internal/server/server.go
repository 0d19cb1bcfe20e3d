// Package server provides HTTP server setup and configuration.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/sebasr/gcs-service/internal/auth"
	"github.com/sebasr/gcs-service/internal/config"
	"github.com/sebasr/gcs-service/internal/handlers"
	"github.com/sebasr/gcs-service/internal/middleware"
	"github.com/sebasr/gcs-service/internal/notifier"
	"github.com/sebasr/gcs-service/internal/repository"
	"github.com/sebasr/gcs-service/internal/session"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("RequestID", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// NewRateLimitMiddleware creates a rate limiting middleware using ulule/limiter.
// It allows 100 requests per minute per IP address.
func NewRateLimitMiddleware() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	store := memory.NewStore()
	instance := limiter.New(store, rate)

	return mgin.NewMiddleware(instance)
}

// Dependencies holds all dependencies needed to create a server
type Dependencies struct {
	Config    *config.Config
	Session   *session.Session
	EventRepo repository.EventRepository // Optional: nil if no database configured
	Notifier  notifier.Notifier          // Optional: nil if no notifier configured
}

// New creates a new Gin router with all routes configured
func New(deps *Dependencies) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/v1/health"},
	}))

	// CORS for the operator console
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(RequestIDMiddleware())
	router.Use(NewRateLimitMiddleware())
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithDecompressFn(gzip.DefaultDecompressHandle)))

	// Initialize JWT service and auth middleware
	jwtService := auth.NewJWTService(
		deps.Config.Auth.JWTSecret,
		deps.Config.Auth.JWTAccessTokenTTL,
	)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	authRateLimiter := middleware.NewAuthRateLimitMiddleware()

	// Initialize handlers
	recorder := handlers.NewEventRecorder(deps.EventRepo, deps.Notifier)
	sessionHandler := handlers.NewSessionHandler(deps.Session, recorder)
	parameterHandler := handlers.NewParameterHandler(deps.Session, recorder)
	motorHandler := handlers.NewMotorHandler(deps.Session, recorder)
	calibrationHandler := handlers.NewCalibrationHandler(deps.Session, recorder)
	emergencyHandler := handlers.NewEmergencyHandler(deps.Session, recorder)
	authHandler := handlers.NewAuthHandler(&deps.Config.Auth, jwtService)
	eventHandler := handlers.NewEventHandler(recorder)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.PureJSON(http.StatusOK, gin.H{
				"status":    "healthy",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"version":   "1.0.0",
			})
		})

		// Auth routes (with stricter rate limiting)
		authGroup := v1.Group("/auth")
		authGroup.Use(authRateLimiter)
		{
			authGroup.POST("/login", authHandler.Login)
		}

		// All vehicle session routes require an authenticated operator
		protected := v1.Group("")
		protected.Use(authMiddleware.Required())
		{
			sess := protected.Group("/session")
			{
				sess.POST("/connect", sessionHandler.Connect)
				sess.POST("/disconnect", sessionHandler.Disconnect)
				sess.GET("/status", sessionHandler.Status)
			}

			protected.GET("/vehicle", sessionHandler.GetVehicleInfo)

			protected.GET("/parameters", parameterHandler.ListParameters)
			protected.PUT("/parameters/:id", parameterHandler.SetParameter)

			protected.POST("/motors/test", motorHandler.TestMotor)

			calibration := protected.Group("/calibration")
			{
				calibration.POST("/accelerometer", calibrationHandler.CalibrateAccelerometer)
				calibration.POST("/gyroscope", calibrationHandler.CalibrateGyroscope)
			}

			// Emergency routes: the handler invokes the controller before any
			// other work, so nothing in this stack sits on the critical path
			// beyond routing itself.
			protected.GET("/emergency-stop", emergencyHandler.Status)
			protected.POST("/emergency-stop", emergencyHandler.EmergencyStop)
			protected.POST("/emergency-stop/rearm", emergencyHandler.Rearm)

			protected.GET("/events", eventHandler.ListEvents)
		}
	}

	return router
}
