package handler

import (
	"errors"
	"net/http"

	"github.com/shopfront/storefront/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse acknowledges an action without returning a resource.
type messageResponse struct {
	Message string `json:"message"`
}

// ErrorStatus maps a domain error to its HTTP status and client-facing
// message. ok is false for errors with no public mapping.
func ErrorStatus(err error) (code int, msg string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, domain.ErrMissingFields.Error(), true
	case errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest, domain.ErrConflict.Error(), true
	case errors.Is(err, domain.ErrInvalidInput):
		// Validation details are safe to show.
		return http.StatusBadRequest, err.Error(), true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error(), true
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusForbidden, "unauthorized", true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.ErrForbidden.Error(), true
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.ErrNotFound.Error(), true
	case errors.Is(err, domain.ErrOrderSettled):
		return http.StatusConflict, domain.ErrOrderSettled.Error(), true
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, domain.ErrTooManyAttempts.Error(), true
	}
	return 0, "", false
}
