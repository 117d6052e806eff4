package service

import (
	"context"

	"foodshare/internal/model"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockFoodRepository is a mock implementation of FoodRepository.
type MockFoodRepository struct {
	mock.Mock
}

func (m *MockFoodRepository) List(ctx context.Context, filter model.FoodFilter) ([]model.FoodListing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodListing), args.Error(1)
}

func (m *MockFoodRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.FoodListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodListing), args.Error(1)
}

func (m *MockFoodRepository) Create(ctx context.Context, listing *model.FoodListing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockFoodRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*model.FoodListing, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodListing), args.Error(1)
}

func (m *MockFoodRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status model.FoodStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockFoodRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockRequestRepository is a mock implementation of RequestRepository.
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) List(ctx context.Context) ([]model.FoodRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodRequest), args.Error(1)
}

func (m *MockRequestRepository) ListByFood(ctx context.Context, foodID string) ([]model.FoodRequest, error) {
	args := m.Called(ctx, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodRequest), args.Error(1)
}

func (m *MockRequestRepository) Create(ctx context.Context, req *model.FoodRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) UpdateStatus(ctx context.Context, foodID string, id primitive.ObjectID, status model.RequestStatus) (*model.FoodRequest, error) {
	args := m.Called(ctx, foodID, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodRequest), args.Error(1)
}

// assignFoodID mimics a store assigning an ID on insert.
func assignFoodID(id primitive.ObjectID) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*model.FoodListing).ID = id
	}
}

func assignRequestID(id primitive.ObjectID) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*model.FoodRequest).ID = id
	}
}
