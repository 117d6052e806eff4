package handler

import (
	"context"
	"net/http"
	"time"

	"foodshare/internal/model"
	"foodshare/internal/repository"

	"github.com/rs/zerolog"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	pinger  repository.Pinger
	timeout time.Duration
	logger  zerolog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(pinger repository.Pinger, timeout time.Duration, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		pinger:  pinger,
		timeout: timeout,
		logger:  logger.With().Str("handler", "health").Logger(),
	}
}

// Root handles GET / with a plain-text liveness message.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Server is running fine!"))
}

// Ready handles GET /health/ready by pinging the store.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Error().Err(err).Msg("store ping failed")
		WriteFailure(w, http.StatusServiceUnavailable, model.ErrCodeStoreUnavailable, model.ErrStoreUnavailable.Message)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}
