package repository

import (
	"context"

	"foodshare/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodRepository defines the interface for food listing data access.
// Lookups that match nothing return a nil listing and a nil error.
type FoodRepository interface {
	// List retrieves every listing matching the filter.
	List(ctx context.Context, filter model.FoodFilter) ([]model.FoodListing, error)

	// GetByID retrieves a single listing by its ID.
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.FoodListing, error)

	// Create stores a new listing and assigns its ID.
	Create(ctx context.Context, listing *model.FoodListing) error

	// Update merges fields into the stored listing and returns the result.
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*model.FoodListing, error)

	// SetStatus overwrites the listing's status. It reports whether a
	// listing matched.
	SetStatus(ctx context.Context, id primitive.ObjectID, status model.FoodStatus) (bool, error)

	// Delete removes a listing and returns the number of removed records.
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// RequestRepository defines the interface for food request data access.
type RequestRepository interface {
	// List retrieves every request.
	List(ctx context.Context) ([]model.FoodRequest, error)

	// ListByFood retrieves the requests for one food listing.
	ListByFood(ctx context.Context, foodID string) ([]model.FoodRequest, error)

	// Create stores a new request and assigns its ID.
	Create(ctx context.Context, req *model.FoodRequest) error

	// UpdateStatus sets the status of the request with the given ID that
	// belongs to foodID and returns the updated request.
	UpdateStatus(ctx context.Context, foodID string, id primitive.ObjectID, status model.RequestStatus) (*model.FoodRequest, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
