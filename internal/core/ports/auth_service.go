package ports

import (
	"context"
	"time"

	"github.com/shopfront/storefront/internal/core/domain"
)

// RegisterInput carries a storefront sign-up request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	RemoteIP string
}

// LoginInput carries a credential check for either account variant.
type LoginInput struct {
	Email    string
	Password string
	RemoteIP string
}

// LoginResult is returned after a successful end-user login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.EndUser
}

// AdminLoginResult is returned after a successful administrator login.
type AdminLoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *domain.Administrator
}

// AuthService handles storefront accounts.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.EndUser, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Profile(ctx context.Context, userID int64) (*domain.EndUser, error)
}

// AdminAuthService handles admin-panel logins.
type AdminAuthService interface {
	Login(ctx context.Context, in LoginInput) (*AdminLoginResult, error)
}
