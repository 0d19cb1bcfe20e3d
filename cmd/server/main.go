// Package main is the entry point for the GCS service HTTP server.
package main

import (
	"log"

	"github.com/sebasr/gcs-service/internal/config"
	"github.com/sebasr/gcs-service/internal/database"
	"github.com/sebasr/gcs-service/internal/notifier"
	"github.com/sebasr/gcs-service/internal/repository"
	"github.com/sebasr/gcs-service/internal/server"
	"github.com/sebasr/gcs-service/internal/session"
	"github.com/sebasr/gcs-service/internal/transport"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the optional audit-log database
	var eventRepo repository.EventRepository
	if cfg.DatabaseConfigured() {
		db, err := database.New(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Printf("Error closing database: %v", err)
			}
		}()

		eventRepo = repository.NewPostgresEventRepository(db.DB)
		log.Println("Audit log database connected")
	} else {
		log.Println("No audit-log database configured - event recording disabled")
	}

	// Initialize the optional event notifier
	var ntf notifier.Notifier
	switch cfg.Notifier.Provider {
	case "mqtt":
		mqttNotifier, err := notifier.NewMQTTNotifier(
			cfg.Notifier.BrokerURL,
			cfg.Notifier.TopicPrefix,
			cfg.Notifier.ClientID,
		)
		if err != nil {
			log.Fatalf("Failed to create MQTT notifier: %v", err)
		}
		ntf = mqttNotifier
		log.Println("Event notifier initialized with MQTT provider")
	case "console":
		ntf = notifier.NewConsoleNotifier()
		log.Println("Event notifier initialized with console provider")
	default:
		log.Println("Event notifier not configured")
	}
	if ntf != nil {
		defer func() {
			if err := ntf.Close(); err != nil {
				log.Printf("Error closing notifier: %v", err)
			}
		}()
	}

	// Create the telemetry link and the session core.
	// The simulated link stands in for the MAVLink transport.
	link := transport.NewSim()
	link.HeartbeatInterval = cfg.Session.SimHeartbeatInterval

	sess := session.New(link, session.Config{
		HeartbeatTimeout:         cfg.Session.HeartbeatTimeout,
		AccelCalibrationDuration: cfg.Session.AccelCalibrationDuration,
		GyroCalibrationDuration:  cfg.Session.GyroCalibrationDuration,
		EmergencyBudget:          cfg.Session.EmergencyBudget,
	})

	// Create server dependencies
	deps := &server.Dependencies{
		Config:    cfg,
		Session:   sess,
		EventRepo: eventRepo,
		Notifier:  ntf,
	}

	// Create and start the server
	srv := server.New(deps)

	log.Printf("Starting server on port %s", cfg.Server.Port)
	if err := srv.Run(":" + cfg.Server.Port); err != nil {
		log.Printf("Failed to start server: %v", err)
		panic(err) // Use panic instead of log.Fatalf to ensure defer runs
	}
}
