package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/internal/api/metrics"
	"github.com/shopfront/storefront/internal/core/ports"
)

// AdminCookieConfig describes the session cookie handed to the admin panel.
type AdminCookieConfig struct {
	Name     string
	MaxAge   time.Duration
	Secure   bool
	HomePath string
}

// AdminAuthHandler serves the admin panel login and logout endpoints.
type AdminAuthHandler struct {
	authService ports.AdminAuthService
	guard       loginGuard
	cookie      AdminCookieConfig
}

func NewAdminAuthHandler(
	authService ports.AdminAuthService,
	limiter ports.LoginLimiter,
	cookie AdminCookieConfig,
	log zerolog.Logger,
) *AdminAuthHandler {
	return &AdminAuthHandler{
		authService: authService,
		guard:       loginGuard{limiter: limiter, variant: variantAdmin, log: log},
		cookie:      cookie,
	}
}

// Login authenticates an administrator and sets the session cookie.
//
// @Summary      Admin login
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  adminLoginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/admin/auth/login [post]
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(variantAdmin, "missing_fields").Inc()
		return err
	}

	key := attemptKey(variantAdmin, c.RealIP(), req.Email)
	if err := h.guard.admit(c, key); err != nil {
		return err
	}

	ctx := c.Request().Context()
	result, err := h.authService.Login(ctx, ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		RemoteIP: c.RealIP(),
	})
	h.guard.settle(ctx, key, err)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge / time.Second),
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, adminLoginResponse{
		Message:  "Login successful",
		Redirect: h.cookie.HomePath,
	})
}

// Logout clears the session cookie. The token itself stays valid until it
// expires.
//
// @Summary      Admin logout
// @Tags         admin-auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/admin/auth/logout [post]
func (h *AdminAuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}
