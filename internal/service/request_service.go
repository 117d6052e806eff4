package service

import (
	"context"
	"fmt"
	"time"

	"foodshare/internal/model"
	"foodshare/internal/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestOptions tunes the request workflow.
type RequestOptions struct {
	// Timeout bounds each store call.
	Timeout time.Duration

	// ValidateFoodReference makes Create fail with model.ErrFoodNotFound
	// when the listing does not exist.
	ValidateFoodReference bool
}

// requestService implements RequestService.
type requestService struct {
	requests repository.RequestRepository
	foods    repository.FoodRepository
	opts     RequestOptions
	now      func() time.Time
	logger   zerolog.Logger
}

// NewRequestService creates a new request service.
func NewRequestService(
	requests repository.RequestRepository,
	foods repository.FoodRepository,
	opts RequestOptions,
	logger zerolog.Logger,
) RequestService {
	return &requestService{
		requests: requests,
		foods:    foods,
		opts:     opts,
		now:      time.Now,
		logger:   logger.With().Str("service", "request").Logger(),
	}
}

// ListAll retrieves every request.
func (s *requestService) ListAll(ctx context.Context) ([]model.FoodRequest, error) {
	ctx, cancel := callTimeout(ctx, s.opts.Timeout)
	defer cancel()

	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	if requests == nil {
		requests = []model.FoodRequest{}
	}

	return requests, nil
}

// ListByFood retrieves the requests for one listing.
func (s *requestService) ListByFood(ctx context.Context, foodID string) ([]model.FoodRequest, error) {
	oid, err := model.ParseID(foodID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := callTimeout(ctx, s.opts.Timeout)
	defer cancel()

	requests, err := s.requests.ListByFood(ctx, oid.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for food: %w", err)
	}

	if requests == nil {
		requests = []model.FoodRequest{}
	}

	s.logger.Debug().Str("food_id", oid.Hex()).Int("count", len(requests)).Msg("listed requests for food")

	return requests, nil
}

// Create files a pending request for the listing.
func (s *requestService) Create(ctx context.Context, foodID string, payload map[string]any) (*model.FoodRequest, error) {
	oid, err := model.ParseID(foodID)
	if err != nil {
		return nil, err
	}

	if err := model.CheckFieldKeys(payload); err != nil {
		return nil, err
	}

	if s.opts.ValidateFoodReference {
		if err := s.ensureFoodExists(ctx, oid); err != nil {
			return nil, err
		}
	}

	req := model.NewFoodRequest(oid, payload, s.now())

	ctx, cancel := callTimeout(ctx, s.opts.Timeout)
	defer cancel()

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	s.logger.Info().
		Str("request_id", req.ID.Hex()).
		Str("food_id", req.FoodID).
		Msg("request created successfully")

	return req, nil
}

// UpdateStatus sets the request's status and, when the request is
// accepted, marks the listing recorded on the request as donated. The two
// writes are independent; a failed cascade leaves the request updated.
func (s *requestService) UpdateStatus(ctx context.Context, foodID, requestID string, status model.RequestStatus) (*model.FoodRequest, error) {
	foodOID, err := model.ParseID(foodID)
	if err != nil {
		return nil, err
	}

	requestOID, err := model.ParseID(requestID)
	if err != nil {
		return nil, err
	}

	updateCtx, cancel := callTimeout(ctx, s.opts.Timeout)
	defer cancel()

	req, err := s.requests.UpdateStatus(updateCtx, foodOID.Hex(), requestOID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}

	if req == nil {
		return nil, model.ErrRequestNotFound
	}

	s.logger.Info().
		Str("request_id", requestID).
		Str("food_id", req.FoodID).
		Str("status", string(status)).
		Msg("request status updated")

	if !status.MarksFoodDonated() {
		return req, nil
	}

	if err := s.markDonated(ctx, req.FoodID); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *requestService) markDonated(ctx context.Context, foodID string) error {
	oid, err := model.ParseID(foodID)
	if err != nil {
		s.logger.Warn().Err(err).Str("food_id", foodID).Msg("accepted request references malformed food id")
		return nil
	}

	ctx, cancel := callTimeout(ctx, s.opts.Timeout)
	defer cancel()

	matched, err := s.foods.SetStatus(ctx, oid, model.FoodStatusDonated)
	if err != nil {
		return fmt.Errorf("failed to mark food donated: %w", err)
	}

	if !matched {
		s.logger.Warn().Str("food_id", foodID).Msg("accepted request references missing food")
		return nil
	}

	s.logger.Info().Str("food_id", foodID).Msg("food marked as donated")
	return nil
}

func (s *requestService) ensureFoodExists(ctx context.Context, oid primitive.ObjectID) error {
	ctx, cancel := callTimeout(ctx, s.opts.Timeout)
	defer cancel()

	listing, err := s.foods.GetByID(ctx, oid)
	if err != nil {
		return fmt.Errorf("failed to verify food: %w", err)
	}

	if listing == nil {
		s.logger.Debug().Str("food_id", oid.Hex()).Msg("request rejected for missing food")
		return model.ErrFoodNotFound
	}

	return nil
}
