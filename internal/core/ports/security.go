package ports

import (
	"context"
	"time"

	"github.com/shopfront/storefront/pkg/token"
)

// PasswordHasher is the one-way password function used for every account.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenService mints and checks bearer tokens.
type TokenService interface {
	Issue(claims token.Claims) (string, time.Time, error)
	Verify(raw string) (*token.Claims, error)
}

// LoginLimiter throttles repeated failed logins for a key (variant, client
// address and email).
type LoginLimiter interface {
	// Allow reports whether another attempt is permitted and, if not, how
	// long the caller should wait.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
