package domain

import (
	"errors"

	"github.com/shopfront/storefront/pkg/token"
)

// Errors shared by services and mapped to HTTP responses at the API boundary.
var (
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrConflict           = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrOrderSettled       = errors.New("order already settled")
	// ErrForbidden is a signed-in caller acting above its role.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidToken covers missing, malformed, expired and forged tokens.
	ErrInvalidToken = token.ErrInvalidToken
)
