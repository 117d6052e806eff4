package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"foodshare/internal/model"
	"foodshare/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// RequestHandler handles food request HTTP requests.
type RequestHandler struct {
	service  service.RequestService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewRequestHandler creates a new request handler.
func NewRequestHandler(service service.RequestService, logger zerolog.Logger) *RequestHandler {
	return &RequestHandler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With().Str("handler", "request").Logger(),
	}
}

// ListAll handles GET /requests requests.
func (h *RequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListAll(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, requests)
}

// ListByFood handles GET /foods/{id}/requests requests.
func (h *RequestHandler) ListByFood(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListByFood(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, requests)
}

// Create handles POST /foods/{id}/request requests.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(w, r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	req, err := h.service.Create(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, req)
}

// UpdateStatus handles PATCH /foods/{id}/requests/{reqId} requests.
func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body model.StatusUpdate
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, model.ErrValidation.Wrap(fmt.Errorf("invalid status body: %w", err)), h.logger)
		return
	}

	if err := h.validate.Struct(body); err != nil {
		writeError(w, model.ErrValidation.Wrap(errors.New("status is required")), h.logger)
		return
	}

	req, err := h.service.UpdateStatus(
		r.Context(),
		chi.URLParam(r, "id"),
		chi.URLParam(r, "reqId"),
		model.RequestStatus(body.Status),
	)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, req)
}
