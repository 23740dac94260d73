package helper

import (
	"errors"
	"net/http"
)

// Sentinel errors for the meal engagement and request subsystem. Controllers
// map them to HTTP statuses with StatusCode; services wrap them with context
// via fmt.Errorf("...: %w", ...).
var (
	// ErrNotFound means the referenced meal or request does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden means a subscription or admin requirement was not met.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation means the input was rejected before any mutation.
	ErrValidation = errors.New("validation failed")
	// ErrPartialFailure means one half of a two-entity mutation succeeded
	// and the other did not. The caller gets both halves reported.
	ErrPartialFailure = errors.New("partial failure")
	// ErrStorage means the underlying store was unavailable or conflicted.
	ErrStorage = errors.New("storage error")
)

// StatusCode maps a service error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrPartialFailure), errors.Is(err, ErrStorage):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
