package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodshare/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFoodService is a mock implementation of FoodService.
type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) List(ctx context.Context, filter model.FoodFilter) ([]model.FoodListing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodListing), args.Error(1)
}

func (m *MockFoodService) GetByID(ctx context.Context, id string) (*model.FoodListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodListing), args.Error(1)
}

func (m *MockFoodService) Create(ctx context.Context, payload map[string]any) (*model.FoodListing, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodListing), args.Error(1)
}

func (m *MockFoodService) Update(ctx context.Context, id string, payload map[string]any) (*model.FoodListing, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodListing), args.Error(1)
}

func (m *MockFoodService) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeleteResult), args.Error(1)
}

// MockRequestService is a mock implementation of RequestService.
type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) ListAll(ctx context.Context) ([]model.FoodRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodRequest), args.Error(1)
}

func (m *MockRequestService) ListByFood(ctx context.Context, foodID string) ([]model.FoodRequest, error) {
	args := m.Called(ctx, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodRequest), args.Error(1)
}

func (m *MockRequestService) Create(ctx context.Context, foodID string, payload map[string]any) (*model.FoodRequest, error) {
	args := m.Called(ctx, foodID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodRequest), args.Error(1)
}

func (m *MockRequestService) UpdateStatus(ctx context.Context, foodID, requestID string, status model.RequestStatus) (*model.FoodRequest, error) {
	args := m.Called(ctx, foodID, requestID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodRequest), args.Error(1)
}

// MockPinger is a mock implementation of Pinger.
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// withURLParams attaches chi path parameters to a request.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeEnvelope parses a response body into an envelope with a raw result.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (Envelope, json.RawMessage) {
	t.Helper()

	var raw struct {
		Envelope
		Result json.RawMessage `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	return raw.Envelope, raw.Result
}
