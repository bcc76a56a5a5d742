package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/pkg/token"
)

// IdentityKey is the echo context key holding the verified *token.Claims.
const IdentityKey = "identity"

// TokenVerifier checks a raw token and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// SetIdentity stores verified claims on the request context.
func SetIdentity(c echo.Context, claims *token.Claims) {
	c.Set(IdentityKey, claims)
}

// Identity returns the claims stored by one of the gates, if any.
func Identity(c echo.Context) (*token.Claims, bool) {
	claims, ok := c.Get(IdentityKey).(*token.Claims)
	return claims, ok && claims != nil
}
