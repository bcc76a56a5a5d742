package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/internal/api/middleware"
	"github.com/shopfront/storefront/internal/core/ports"
	"github.com/shopfront/storefront/pkg/token"
)

// ctxIdentity returns the claims injected by one of the gates. A route wired
// without a gate has no identity and is rejected with 401.
func ctxIdentity(c echo.Context) (*token.Claims, error) {
	claims, ok := middleware.Identity(c)
	if !ok || claims.AccountID <= 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return claims, nil
}

func actorOf(claims *token.Claims) ports.Actor {
	return ports.Actor{ID: claims.AccountID, Role: claims.Role}
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs the struct
// validator. Both failures are 400.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
