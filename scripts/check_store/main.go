package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"foodshare/internal/config"
	"foodshare/internal/model"
	"foodshare/internal/repository"

	"go.uber.org/multierr"
)

// Connects with the configured driver, pings the store and prints how many
// listings and requests it holds.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("unable to load configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := config.NewLogger(cfg.Logger)

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("unable to connect to %s store: %w", cfg.Store.Driver, err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer closeCancel()
		err = multierr.Append(err, store.Close(closeCtx))
	}()

	if err := store.Pinger.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	fmt.Printf("Successfully connected to %s store\n", cfg.Store.Driver)

	foods, err := store.Foods.List(ctx, model.FoodFilter{})
	if err != nil {
		return fmt.Errorf("listing foods failed: %w", err)
	}

	requests, err := store.Requests.List(ctx)
	if err != nil {
		return fmt.Errorf("listing requests failed: %w", err)
	}

	fmt.Printf("\nfoods:    %d\nrequests: %d\n", len(foods), len(requests))
	return nil
}
