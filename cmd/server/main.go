package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "community-portal-backend/internal/api/http"
	"community-portal-backend/internal/config"
	"community-portal-backend/internal/logger"
	"community-portal-backend/internal/repository/postgres"
	"community-portal-backend/internal/security"
	"community-portal-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Community Portal Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Services
	authz := service.NewAuthorizer(
		store.UserRepository,
		store.CommunityRepository,
		store.MeetupLocationRepository,
		store.MeetupRepository,
	)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	communitySvc := service.NewCommunityService(
		store.CommunityRepository,
		store.RequestCommunityRepository,
		store.JoinRequestRepository,
		store.UserRepository,
		store.OutboxRepository,
		authz,
	)
	meetupSvc := service.NewMeetupService(
		store.MeetupLocationRepository,
		store.RequestMeetupLocationRepository,
		store.MeetupRepository,
		store.RequestMeetupRepository,
		store.RsvpRepository,
		store.SupportRequestRepository,
		store.CommentRepository,
		store.OutboxRepository,
		authz,
	)

	// Dispatch outbox events in-process; cmd/cronjob covers deployments
	// that prefer an external scheduler.
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	dispatcher := service.NewOutboxDispatcher(
		store.OutboxRepository,
		store.UserRepository,
		store.CommunityRepository,
		store.RequestCommunityRepository,
		store.JoinRequestRepository,
		store.MeetupLocationRepository,
		store.RequestMeetupLocationRepository,
		store.MeetupRepository,
		store.RequestMeetupRepository,
		store.SupportRequestRepository,
		emailSvc,
	)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if sent, err := dispatcher.DispatchPending(context.Background()); err != nil {
				logger.Warn("Outbox dispatch incomplete", "sent", sent, "error", err)
			}
		}
	}()

	// Set up HTTP server
	router := httpapi.NewRouter(tokenManager, authSvc, communitySvc, meetupSvc)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
