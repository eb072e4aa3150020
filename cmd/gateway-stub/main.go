package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petclinic-console/internal/config"
	"petclinic-console/internal/database"
	"petclinic-console/internal/handler"
	"petclinic-console/internal/repository"
	"petclinic-console/internal/router"
	"petclinic-console/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger, nil)
	logger.Info().Msg("starting petclinic gateway stub")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Initialize repositories
	inventoryRepo := repository.NewInventoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	visitRepo := repository.NewVisitRepository(pool, logger)
	vetRepo := repository.NewVetRepository(pool, logger)
	billRepo := repository.NewBillRepository(pool, logger)

	// Initialize services
	inventoryService := service.NewInventoryService(inventoryRepo, productRepo, logger)
	visitService := service.NewVisitService(visitRepo, logger)
	clinicService := service.NewClinicService(vetRepo, billRepo, logger)

	// Initialize HTTP handlers
	inventoryHandler := handler.NewInventoryHandler(inventoryService, logger)
	visitHandler := handler.NewVisitHandler(visitService, logger)
	clinicHandler := handler.NewClinicHandler(clinicService, logger)

	// Initialize router
	mux := router.New(inventoryHandler, visitHandler, clinicHandler, cfg.Auth.APIKey, logger)

	// WriteTimeout stays zero: event streams outlive any fixed response deadline.
	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Strs("prefixes", router.Prefixes).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
