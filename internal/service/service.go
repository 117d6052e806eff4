package service

import (
	"context"
	"time"

	"foodshare/internal/model"
)

// DefaultTimeout bounds a single store call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// FoodService defines operations for the food catalog.
type FoodService interface {
	// List retrieves listings matching the filter. The result is never nil.
	List(ctx context.Context, filter model.FoodFilter) ([]model.FoodListing, error)

	// GetByID retrieves a single listing by its hex ID.
	GetByID(ctx context.Context, id string) (*model.FoodListing, error)

	// Create normalizes a donor payload and stores it as a new listing.
	Create(ctx context.Context, payload map[string]any) (*model.FoodListing, error)

	// Update merges the payload's mutable top-level fields into a listing.
	Update(ctx context.Context, id string, payload map[string]any) (*model.FoodListing, error)

	// Delete removes a listing. Deleting an absent listing is not an error.
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
}

// RequestService defines operations for the food request workflow.
type RequestService interface {
	// ListAll retrieves every request.
	ListAll(ctx context.Context) ([]model.FoodRequest, error)

	// ListByFood retrieves the requests for one listing.
	ListByFood(ctx context.Context, foodID string) ([]model.FoodRequest, error)

	// Create files a pending request for a listing.
	Create(ctx context.Context, foodID string, payload map[string]any) (*model.FoodRequest, error)

	// UpdateStatus changes a request's status. Accepting a request marks the
	// linked listing as donated.
	UpdateStatus(ctx context.Context, foodID, requestID string, status model.RequestStatus) (*model.FoodRequest, error)
}

// callTimeout returns a context bounded by timeout, falling back to
// DefaultTimeout.
func callTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
