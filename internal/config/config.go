// Package config provides configuration management for the GCS service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Notifier NotifierConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
}

// SessionConfig holds vehicle-session timing configuration
type SessionConfig struct {
	HeartbeatTimeout         time.Duration // Liveness threshold for the telemetry link
	AccelCalibrationDuration time.Duration // Nominal accelerometer sampling time
	GyroCalibrationDuration  time.Duration // Nominal gyroscope sampling time
	EmergencyBudget          time.Duration // Soft completion target for emergency stop
	SimHeartbeatInterval     time.Duration // Heartbeat rate of the simulated link
}

// AuthConfig holds operator authentication configuration
type AuthConfig struct {
	JWTSecret            string
	JWTAccessTokenTTL    time.Duration
	OperatorName         string // Operator account name accepted by /auth/login
	OperatorPasswordHash string // bcrypt hash of the operator password
}

// DatabaseConfig holds the optional audit-log database configuration
type DatabaseConfig struct {
	URL                   string
	Host                  string
	Port                  string
	Name                  string
	User                  string
	Password              string
	SSLMode               string
	MaxConnections        int
	MaxIdleConnections    int
	ConnectionMaxLifetime time.Duration
}

// NotifierConfig holds session-event notifier configuration
type NotifierConfig struct {
	Provider    string // "mqtt", "console" or "none"
	BrokerURL   string // MQTT broker URL, e.g. mqtt://localhost:1883
	TopicPrefix string // Topic prefix for published events
	ClientID    string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Session: SessionConfig{
			HeartbeatTimeout:         getEnvAsDuration("HEARTBEAT_TIMEOUT", "5s"),
			AccelCalibrationDuration: getEnvAsDuration("ACCEL_CALIBRATION_DURATION", "2s"),
			GyroCalibrationDuration:  getEnvAsDuration("GYRO_CALIBRATION_DURATION", "1s"),
			EmergencyBudget:          getEnvAsDuration("EMERGENCY_BUDGET", "1ms"),
			SimHeartbeatInterval:     getEnvAsDuration("SIM_HEARTBEAT_INTERVAL", "1s"),
		},
		Auth: AuthConfig{
			JWTSecret:            GetSecret("JWT_SECRET", "dev-secret-key-change-in-production"),
			JWTAccessTokenTTL:    getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", "12h"),
			OperatorName:         getEnv("OPERATOR_NAME", "operator"),
			OperatorPasswordHash: GetSecret("OPERATOR_PASSWORD_HASH", ""),
		},
		Database: DatabaseConfig{
			URL:                   os.Getenv("DATABASE_URL"),
			Host:                  getEnv("DB_HOST", ""),
			Port:                  getEnv("DB_PORT", "5432"),
			Name:                  getEnv("DB_NAME", "gcs_audit"),
			User:                  getEnv("DB_USER", "gcs_user"),
			Password:              getEnv("DB_PASSWORD", "gcs_pass"),
			SSLMode:               getEnv("DB_SSLMODE", "disable"),
			MaxConnections:        getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MaxIdleConnections:    getEnvAsInt("DB_MAX_IDLE_CONNECTIONS", 5),
			ConnectionMaxLifetime: getEnvAsDuration("DB_CONNECTION_MAX_LIFETIME", "5m"),
		},
		Notifier: NotifierConfig{
			Provider:    getEnv("NOTIFIER_PROVIDER", "none"),
			BrokerURL:   getEnv("MQTT_BROKER_URL", ""),
			TopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "gcs"),
			ClientID:    getEnv("MQTT_CLIENT_ID", "gcs-service"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.Session.HeartbeatTimeout <= 0 {
		return errors.New("HEARTBEAT_TIMEOUT must be positive")
	}
	if c.Session.EmergencyBudget <= 0 {
		return errors.New("EMERGENCY_BUDGET must be positive")
	}
	if c.Notifier.Provider == "mqtt" && c.Notifier.BrokerURL == "" {
		return errors.New("MQTT_BROKER_URL is required when NOTIFIER_PROVIDER=mqtt")
	}
	return nil
}

// DatabaseConfigured reports whether an audit-log database is configured
func (c *Config) DatabaseConfigured() bool {
	return c.Database.URL != "" || c.Database.Host != ""
}

// ConnectionString returns the database connection string
func (d *DatabaseConfig) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		defaultDuration, _ := time.ParseDuration(defaultValue)
		return defaultDuration
	}
	return value
}
