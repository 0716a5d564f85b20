package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	api "rentaldesk-backend/internal/api/http"
	"rentaldesk-backend/internal/config"
	"rentaldesk-backend/internal/jobs"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository/postgres"
	"rentaldesk-backend/internal/scheduler"
	"rentaldesk-backend/internal/security"
	"rentaldesk-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Environment overrides can come from a local .env during development
	godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentaldesk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Booking policy knobs come from configuration, not code
	policy := service.Policy{
		MinLeadTime:         time.Duration(cfg.Policy.MinLeadTimeHours) * time.Hour,
		MaxRentalSpan:       time.Duration(cfg.Policy.MaxRentalDays) * 24 * time.Hour,
		DuplicateWindow:     time.Duration(cfg.Policy.DuplicateWindowMinutes) * time.Minute,
		TopVehiclesLimit:    cfg.Policy.TopVehiclesLimit,
		RecentRequestsLimit: cfg.Policy.RecentRequestsLimit,
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	availabilitySvc := service.NewAvailabilityService(store.VehicleRepository, store.BookingRepository)
	requestSvc := service.NewRentRequestService(
		store.RentRequestRepository,
		store.VehicleRepository,
		store.AdminRepository,
		availabilitySvc,
		emailSvc,
		policy,
	)
	statsSvc := service.NewStatisticsService(store.StatisticsRepository, policy)
	authSvc := service.NewAuthService(store.AdminRepository, tokenManager)

	// Initialize HTTP handlers
	requestHandler := api.NewRentRequestHandler(requestSvc, availabilitySvc)
	adminHandler := api.NewAdminHandler(requestSvc, statsSvc, authSvc)
	vehicleHandler := api.NewVehicleHandler(store.VehicleRepository)

	router := api.NewRouter(requestHandler, adminHandler, vehicleHandler, tokenManager)

	corsMiddleware := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{Email: emailSvc}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      corsMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if err := server.Close(); err != nil {
		logger.Error("Error closing HTTP server", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
