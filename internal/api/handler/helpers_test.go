package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/internal/api/middleware"
	"github.com/shopfront/storefront/pkg/token"
)

// newTestEcho mirrors the production error envelope so tests can assert on
// status codes produced by returned errors.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if code, msg, ok := ErrorStatus(err); ok {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)})
			return
		}
		_ = c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.RemoteAddr = "192.0.2.10:5555"
	return req
}

// serve runs h against req, letting prep set params or identity first.
func serve(e *echo.Echo, h echo.HandlerFunc, req *http.Request, prep func(c echo.Context)) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if prep != nil {
		prep(c)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func withIdentity(id int64, role string) func(c echo.Context) {
	return func(c echo.Context) {
		middleware.SetIdentity(c, &token.Claims{AccountID: id, Email: "caller@example.com", Role: role})
	}
}

func withID(id string) func(c echo.Context) {
	return func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

// stubLimiter records calls made by the login guard.
type stubLimiter struct {
	locked   bool
	retry    time.Duration
	allowErr error

	keys     []string
	failures int
	resets   int
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.keys = append(l.keys, key)
	if l.allowErr != nil {
		return true, 0, l.allowErr
	}
	return !l.locked, l.retry, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, _ string) error {
	l.failures++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, _ string) error {
	l.resets++
	return nil
}
