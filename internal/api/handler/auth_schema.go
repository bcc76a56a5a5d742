package handler

import (
	"encoding/json"
	"time"

	"github.com/shopfront/storefront/internal/core/domain"
)

// --- Storefront auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

// --- Admin panel auth ---

type adminLoginResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// --- Admin user management ---

// adminRequest accepts permissions either as an object of flags or as a list
// of capability names.
type adminRequest struct {
	Name        string          `json:"name"        validate:"max=100"`
	Email       string          `json:"email"       validate:"required,email,max=254"`
	Password    string          `json:"password"    validate:"max=72"`
	Role        string          `json:"role"        validate:"omitempty,oneof=admin superadmin editor"`
	Permissions json.RawMessage `json:"permissions" swaggertype:"object"`
	Phone       string          `json:"phone"       validate:"max=32"`
}

type adminResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Role        string              `json:"role"`
	Permissions []domain.Capability `json:"permissions"`
	Phone       string              `json:"phone,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}
