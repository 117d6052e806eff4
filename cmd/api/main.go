package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodshare/internal/config"
	"foodshare/internal/handler"
	"foodshare/internal/metrics"
	"foodshare/internal/repository"
	"foodshare/internal/router"
	"foodshare/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("driver", cfg.Store.Driver).Msg("starting foodshare API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the shared store connection
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer closeCancel()
		if closeErr := store.Close(closeCtx); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close store: %w", closeErr))
		}
		logger.Info().Msg("store connection released")
	}()

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	// Initialize services
	foodService := service.NewFoodService(store.Foods, cfg.Store.Timeout, logger)
	requestService := service.NewRequestService(store.Requests, store.Foods, service.RequestOptions{
		Timeout:               cfg.Store.Timeout,
		ValidateFoodReference: cfg.Requests.ValidateFoodReference,
	}, logger)

	// Initialize HTTP handlers
	foodHandler := handler.NewFoodHandler(foodService, logger)
	requestHandler := handler.NewRequestHandler(requestService, logger)
	healthHandler := handler.NewHealthHandler(store.Pinger, cfg.Store.Timeout, logger)

	// Initialize router
	mux := router.New(foodHandler, requestHandler, healthHandler, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        httpMetrics,
		Gatherer:       registry,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			return multierr.Append(
				fmt.Errorf("server shutdown failed: %w", err),
				server.Close(),
			)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
