package service

import (
	"context"
	"fmt"
	"time"

	"foodshare/internal/model"
	"foodshare/internal/repository"

	"github.com/rs/zerolog"
)

// foodService implements FoodService.
type foodService struct {
	repo    repository.FoodRepository
	timeout time.Duration
	now     func() time.Time
	logger  zerolog.Logger
}

// NewFoodService creates a new food service. Every store call is bounded
// by timeout.
func NewFoodService(repo repository.FoodRepository, timeout time.Duration, logger zerolog.Logger) FoodService {
	return &foodService{
		repo:    repo,
		timeout: timeout,
		now:     time.Now,
		logger:  logger.With().Str("service", "food").Logger(),
	}
}

// List retrieves listings matching the filter.
func (s *foodService) List(ctx context.Context, filter model.FoodFilter) ([]model.FoodListing, error) {
	ctx, cancel := callTimeout(ctx, s.timeout)
	defer cancel()

	listings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	if listings == nil {
		listings = []model.FoodListing{}
	}

	s.logger.Debug().
		Str("donor_email", filter.DonorEmail).
		Str("name_prefix", filter.NamePrefix).
		Int("count", len(listings)).
		Msg("listed foods")

	return listings, nil
}

// GetByID retrieves a single listing by ID.
func (s *foodService) GetByID(ctx context.Context, id string) (*model.FoodListing, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := callTimeout(ctx, s.timeout)
	defer cancel()

	listing, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to get food: %w", err)
	}

	if listing == nil {
		return nil, model.ErrFoodNotFound
	}

	return listing, nil
}

// Create normalizes the payload and stores the listing.
func (s *foodService) Create(ctx context.Context, payload map[string]any) (*model.FoodListing, error) {
	if err := model.CheckFieldKeys(payload); err != nil {
		return nil, err
	}

	listing := model.NewFoodListing(payload, s.now())

	ctx, cancel := callTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create food: %w", err)
	}

	s.logger.Info().
		Str("food_id", listing.ID.Hex()).
		Str("donor_email", listing.Donor.Email).
		Str("food_status", string(listing.FoodStatus)).
		Msg("food created successfully")

	return listing, nil
}

// Update merges the payload into the stored listing.
func (s *foodService) Update(ctx context.Context, id string, payload map[string]any) (*model.FoodListing, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	fields, err := model.FoodUpdateFields(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := callTimeout(ctx, s.timeout)
	defer cancel()

	listing, err := s.repo.Update(ctx, oid, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update food: %w", err)
	}

	if listing == nil {
		return nil, model.ErrFoodNotFound
	}

	s.logger.Info().
		Str("food_id", id).
		Int("field_count", len(fields)).
		Msg("food updated successfully")

	return listing, nil
}

// Delete removes a listing by ID.
func (s *foodService) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := callTimeout(ctx, s.timeout)
	defer cancel()

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to delete food: %w", err)
	}

	s.logger.Info().
		Str("food_id", id).
		Int64("deleted_count", deleted).
		Msg("food delete processed")

	return &model.DeleteResult{DeletedCount: deleted}, nil
}
