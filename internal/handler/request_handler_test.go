package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodshare/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleRequest(foodID string, status model.RequestStatus) *model.FoodRequest {
	return &model.FoodRequest{
		ID:          primitive.NewObjectID(),
		FoodID:      foodID,
		Status:      status,
		RequestDate: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		Fields:      map[string]any{"requesterEmail": "b@y.com"},
	}
}

func TestRequestHandler_ListAll(t *testing.T) {
	svc := new(MockRequestService)
	svc.On("ListAll", mock.Anything).Return([]model.FoodRequest{}, nil)
	h := NewRequestHandler(svc, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.ListAll(rec, httptest.NewRequest(http.MethodGet, "/requests", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"result":[]}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestRequestHandler_ListByFood(t *testing.T) {
	foodID := primitive.NewObjectID().Hex()

	svc := new(MockRequestService)
	svc.On("ListByFood", mock.Anything, foodID).
		Return([]model.FoodRequest{*sampleRequest(foodID, model.RequestStatusPending)}, nil)
	h := NewRequestHandler(svc, zerolog.Nop())

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/foods/"+foodID+"/requests", nil), map[string]string{"id": foodID})
	rec := httptest.NewRecorder()

	h.ListByFood(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	_, result := decodeEnvelope(t, rec)
	var docs []map[string]any
	require.NoError(t, json.Unmarshal(result, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, foodID, docs[0]["foodId"])
	assert.Equal(t, "pending", docs[0]["status"])
	svc.AssertExpectations(t)
}

func TestRequestHandler_Create(t *testing.T) {
	foodID := primitive.NewObjectID().Hex()

	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockRequestService)
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"requesterEmail":"b@y.com"}`,
			mockSetup: func(m *MockRequestService) {
				m.On("Create", mock.Anything, foodID, map[string]any{"requesterEmail": "b@y.com"}).
					Return(sampleRequest(foodID, model.RequestStatusPending), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Food missing with reference check",
			body: `{}`,
			mockSetup: func(m *MockRequestService) {
				m.On("Create", mock.Anything, foodID, map[string]any{}).Return(nil, model.ErrFoodNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid body",
			body:           `42`,
			mockSetup:      func(m *MockRequestService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRequestService)
			tt.mockSetup(svc)
			h := NewRequestHandler(svc, zerolog.Nop())

			req := withURLParams(
				httptest.NewRequest(http.MethodPost, "/foods/"+foodID+"/request", strings.NewReader(tt.body)),
				map[string]string{"id": foodID},
			)
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestRequestHandler_UpdateStatus(t *testing.T) {
	foodID := primitive.NewObjectID().Hex()
	requestID := primitive.NewObjectID().Hex()

	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockRequestService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Accepted",
			body: `{"status":"accepted"}`,
			mockSetup: func(m *MockRequestService) {
				m.On("UpdateStatus", mock.Anything, foodID, requestID, model.RequestStatusAccepted).
					Return(sampleRequest(foodID, model.RequestStatusAccepted), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Free-text status",
			body: `{"status":"on hold"}`,
			mockSetup: func(m *MockRequestService) {
				m.On("UpdateStatus", mock.Anything, foodID, requestID, model.RequestStatus("on hold")).
					Return(sampleRequest(foodID, "on hold"), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing status",
			body:           `{}`,
			mockSetup:      func(m *MockRequestService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeValidation,
		},
		{
			name:           "Empty body",
			body:           ``,
			mockSetup:      func(m *MockRequestService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeValidation,
		},
		{
			name:           "Non-string status",
			body:           `{"status":5}`,
			mockSetup:      func(m *MockRequestService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeValidation,
		},
		{
			name: "Request not found",
			body: `{"status":"rejected"}`,
			mockSetup: func(m *MockRequestService) {
				m.On("UpdateStatus", mock.Anything, foodID, requestID, model.RequestStatusRejected).
					Return(nil, model.ErrRequestNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRequestService)
			tt.mockSetup(svc)
			h := NewRequestHandler(svc, zerolog.Nop())

			req := withURLParams(
				httptest.NewRequest(http.MethodPatch, "/foods/"+foodID+"/requests/"+requestID, strings.NewReader(tt.body)),
				map[string]string{"id": foodID, "reqId": requestID},
			)
			rec := httptest.NewRecorder()

			h.UpdateStatus(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				env, _ := decodeEnvelope(t, rec)
				assert.Equal(t, tt.expectedCode, env.Error)
			}
			svc.AssertExpectations(t)
		})
	}
}
