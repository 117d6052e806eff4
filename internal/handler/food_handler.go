package handler

import (
	"net/http"

	"foodshare/internal/model"
	"foodshare/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// FoodHandler handles food catalog HTTP requests.
type FoodHandler struct {
	service service.FoodService
	logger  zerolog.Logger
}

// NewFoodHandler creates a new food handler.
func NewFoodHandler(service service.FoodService, logger zerolog.Logger) *FoodHandler {
	return &FoodHandler{
		service: service,
		logger:  logger.With().Str("handler", "food").Logger(),
	}
}

// List handles GET /foods requests with an optional email filter.
func (h *FoodHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, model.FoodFilter{DonorEmail: r.URL.Query().Get("email")})
}

// Search handles GET /foods/search requests, matching names by prefix.
func (h *FoodHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, model.FoodFilter{NamePrefix: r.URL.Query().Get("q")})
}

func (h *FoodHandler) list(w http.ResponseWriter, r *http.Request, filter model.FoodFilter) {
	listings, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, listings)
}

// GetByID handles GET /foods/{id} requests.
func (h *FoodHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, listing)
}

// Create handles POST /foods requests.
func (h *FoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(w, r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	listing, err := h.service.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, listing)
}

// Update handles PUT and PATCH /foods/{id} requests. Both merge.
func (h *FoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(w, r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	listing, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, listing)
}

// Delete handles DELETE /foods/{id} requests.
func (h *FoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}
