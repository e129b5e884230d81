package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/advisor"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/api"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/config"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/database"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/refresh"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/repository"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	telemetryRepo := repository.NewTelemetryRepository(db)
	credentialRepo, err := repository.NewCredentialRepository(db, cfg.Advisor.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to create credential repository: %v", err)
	}

	// Create services
	systemService := service.NewSystemService(db)
	wellnessService := service.NewWellnessService()
	telemetryService := service.NewTelemetryService(telemetryRepo)
	defer telemetryService.Close()
	credentialService := service.NewCredentialService(credentialRepo, cfg.Advisor.Token)

	// Wire the fetch orchestrator: primary GraphQL channel, raw fallback
	// transport, transitions fanned out to the log and the telemetry store.
	primary := advisor.NewClient(cfg.Advisor.Endpoint, credentialService)
	fallback := advisor.NewFallbackTransport(cfg.Advisor.Endpoint, credentialService, cfg.Advisor.AttemptTimeout)
	orchestrator := advisor.NewOrchestrator(primary, fallback, advisor.OrchestratorConfig{
		Watchdog:    cfg.Advisor.Watchdog,
		MaxAttempts: cfg.Advisor.MaxAttempts,
		BackoffBase: cfg.Advisor.BackoffBase,
	}, advisor.MultiObserver(advisor.LogObserver(), telemetryService))

	recommendationService := service.NewRecommendationService(orchestrator)

	// Background cache warmer
	if cfg.Refresher.Enabled {
		refresher := refresh.NewRefresher(recommendationService, cfg.Refresher.Spec)
		if err := refresher.Start(); err != nil {
			log.Fatalf("Failed to start refresher: %v", err)
		}
		defer refresher.Stop()
	}

	// Create router
	router := api.NewRouter(systemService, wellnessService, recommendationService, telemetryService, credentialService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // a full fallback sequence can take most of a minute
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
