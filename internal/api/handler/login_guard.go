package handler

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/internal/api/metrics"
	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

const (
	variantUser  = "user"
	variantAdmin = "admin"
)

// loginGuard applies the failed-login lockout around a login call. Limiter
// outages are logged and the attempt proceeds.
type loginGuard struct {
	limiter ports.LoginLimiter
	variant string
	log     zerolog.Logger
}

// attemptKey buckets attempts by account variant, client address and
// case-folded email.
func attemptKey(variant, remoteIP, email string) string {
	return variant + ":" + remoteIP + ":" + strings.ToLower(strings.TrimSpace(email))
}

// admit returns domain.ErrTooManyAttempts, with Retry-After set, when key is
// locked out.
func (g loginGuard) admit(c echo.Context, key string) error {
	if g.limiter == nil {
		return nil
	}
	ok, retry, err := g.limiter.Allow(c.Request().Context(), key)
	if err != nil {
		g.log.Warn().Err(err).Str("variant", g.variant).Msg("login limiter unavailable")
		return nil
	}
	if ok {
		return nil
	}

	c.Response().Header().Set("Retry-After", retryAfterSeconds(retry))
	metrics.LoginAttemptsTotal.WithLabelValues(g.variant, "locked").Inc()
	g.log.Warn().
		Str("variant", g.variant).
		Str("remote_ip", c.RealIP()).
		Dur("retry_after", retry).
		Msg("login locked out")
	return domain.ErrTooManyAttempts
}

// settle records the outcome of an admitted attempt.
func (g loginGuard) settle(ctx context.Context, key string, err error) {
	switch {
	case err == nil:
		metrics.LoginAttemptsTotal.WithLabelValues(g.variant, "success").Inc()
		if g.limiter != nil {
			if rerr := g.limiter.Reset(ctx, key); rerr != nil {
				g.log.Warn().Err(rerr).Str("variant", g.variant).Msg("login limiter reset failed")
			}
		}
	case errors.Is(err, domain.ErrInvalidCredentials):
		metrics.LoginAttemptsTotal.WithLabelValues(g.variant, "invalid").Inc()
		if g.limiter != nil {
			if rerr := g.limiter.RecordFailure(ctx, key); rerr != nil {
				g.log.Warn().Err(rerr).Str("variant", g.variant).Msg("login limiter record failed")
			}
		}
	case errors.Is(err, domain.ErrMissingFields):
		metrics.LoginAttemptsTotal.WithLabelValues(g.variant, "missing_fields").Inc()
	default:
		metrics.LoginAttemptsTotal.WithLabelValues(g.variant, "error").Inc()
	}
}

func retryAfterSeconds(d time.Duration) string {
	secs := int64(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}
