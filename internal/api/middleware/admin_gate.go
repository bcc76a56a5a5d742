package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/internal/api/metrics"
	"github.com/shopfront/storefront/pkg/token"
)

// AdminGateConfig names the cookie carrying the admin token and the page
// unauthenticated browsers are sent to.
type AdminGateConfig struct {
	CookieName string
	LoginPath  string
}

// AdminGate protects the admin panel and admin API. Requests without a valid
// admin cookie are redirected to the login page; the login page itself and
// the admin auth endpoints always pass.
func AdminGate(tokens TokenVerifier, cfg AdminGateConfig, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if isAdminPublicPath(path) {
				return next(c)
			}

			cookie, err := c.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("admin", "missing").Inc()
				return c.Redirect(http.StatusFound, cfg.LoginPath)
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				reason := token.Reason(err)
				metrics.TokenRejectionsTotal.WithLabelValues("admin", reason).Inc()
				log.Debug().Err(err).Str("reason", reason).Str("path", path).Msg("admin token rejected")
				return c.Redirect(http.StatusFound, cfg.LoginPath)
			}
			// End-user tokens carry no role.
			if claims.Role == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("admin", "role").Inc()
				log.Debug().Int64("account_id", claims.AccountID).Str("path", path).Msg("non-admin token at admin gate")
				return c.Redirect(http.StatusFound, cfg.LoginPath)
			}

			SetIdentity(c, claims)
			return next(c)
		}
	}
}

func isAdminPublicPath(path string) bool {
	return strings.HasSuffix(path, "login.html") || strings.HasPrefix(path, "/api/admin/auth")
}
