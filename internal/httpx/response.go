// Package httpx holds the JSON response helpers shared by every module handler.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/logger"
	"github.com/georgemunganga/shopstock-backend/internal/validation"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	json.NewEncoder(w).Encode(payload)
}

// JSONError writes an ErrorResponse.
func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// Error maps the shared error kinds to a status code. Anything unknown is
// logged and reported as 500 without leaking the cause.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		JSONError(w, http.StatusBadRequest, "validation failed", verr.Violations)
	case errors.Is(err, database.ErrNotFound):
		JSONError(w, http.StatusNotFound, "not found", nil)
	case errors.Is(err, database.ErrConflict):
		JSONError(w, http.StatusConflict, "already exists", nil)
	case errors.Is(err, database.ErrInvalidReference):
		JSONError(w, http.StatusUnprocessableEntity, "referenced record does not exist", nil)
	case errors.Is(err, database.ErrCheckViolation):
		JSONError(w, http.StatusUnprocessableEntity, "value violates a constraint", nil)
	default:
		logger.FromContext(r.Context()).Error("request failed", zap.Error(err))
		JSONError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

// Decode reads a JSON body into dst, rejecting unknown fields.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return validation.Single("body", fmt.Sprintf("is not valid JSON: %v", err))
	}
	return nil
}

// UUIDParam parses the named chi URL parameter.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, validation.Single(name, "must be a UUID")
	}
	return id, nil
}

// UUIDQuery parses a required query parameter.
func UUIDQuery(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return uuid.Nil, validation.Single(name, "is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, validation.Single(name, "must be a UUID")
	}
	return id, nil
}
