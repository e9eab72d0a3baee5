package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "rentals-service/internal/api/http"
	"rentals-service/internal/config"
	"rentals-service/internal/jobs"
	"rentals-service/internal/logger"
	"rentals-service/internal/repository"
	"rentals-service/internal/repository/memory"
	"rentals-service/internal/repository/postgres"
	"rentals-service/internal/scheduler"
	"rentals-service/internal/service"
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
	logger.Info("Starting Rentals service...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "store", cfg.Store)

	if err := run(cfg); err != nil {
		logger.Error("Rentals service failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Rentals service stopped")
}

// run owns every resource the server opens so deferred cleanup always runs
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize store
	rentalRepo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	// Initialize services
	rentalSvc := service.NewRentalService(rentalRepo)

	// Initialize in-process scheduler
	if cfg.Scheduler.Enabled {
		jobRunner := jobs.NewJobRunner(&jobs.Services{Rental: rentalSvc}, cfg)
		cronScheduler, err := scheduler.NewScheduler(jobRunner)
		if err != nil {
			return fmt.Errorf("failed to initialize scheduler: %w", err)
		}
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.NewRentalHandler(rentalSvc), cfg.RequestTimeout())
	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	return runErr
}

// openStore builds the configured rental store and its teardown function
func openStore(ctx context.Context, cfg *config.Config) (repository.RentalRepository, func(), error) {
	if cfg.Store == config.StoreTypeMemory {
		logger.Info("Using in-memory rental store")
		return memory.NewRentalRepository(), func() {}, nil
	}

	logger.Info("Database configuration", "driver", cfg.Database.Driver, "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	if cfg.Database.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}, nil
}
