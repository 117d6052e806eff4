package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"foodshare/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes caps the size of JSON request bodies.
const maxBodyBytes = 1 << 20

// Envelope is the shape of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful can reach the client.
		return
	}
}

// writeSuccess wraps result in a success envelope.
func writeSuccess(w http.ResponseWriter, status int, result any) {
	writeJSON(w, status, Envelope{Success: true, Result: result})
}

// writeError maps err to an HTTP status and writes a failure envelope.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	status, code, message := classify(err)

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Str("code", code).Int("status", status).Msg("handler error")

	writeJSON(w, status, Envelope{Success: false, Message: message, Error: code})
}

// WriteFailure writes a failure envelope without an underlying error. The
// router uses it for unknown routes and methods.
func WriteFailure(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message, Error: code})
}

func classify(err error) (status int, code, message string) {
	de := model.AsDomainError(err)
	if de == nil {
		return http.StatusInternalServerError, model.ErrCodeInternalError, "Internal server error"
	}

	switch de.Code {
	case model.ErrCodeNotFound:
		return http.StatusNotFound, de.Code, de.Message
	case model.ErrCodeInvalidIdentifier, model.ErrCodeValidation:
		return http.StatusBadRequest, de.Code, de.Error()
	default:
		return http.StatusInternalServerError, de.Code, de.Message
	}
}

// decodeObject reads a JSON object body. An empty body decodes to an empty
// object; anything else that is not an object is a validation failure.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	var payload map[string]any

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload)
	if errors.Is(err, io.EOF) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, model.ErrValidation.Wrap(fmt.Errorf("request body must be a JSON object: %w", err))
	}
	if payload == nil {
		return nil, model.ErrValidation.Wrap(errors.New("request body must be a JSON object"))
	}

	return payload, nil
}
