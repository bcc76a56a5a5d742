package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/pkg/token"
)

var gateConfig = AdminGateConfig{CookieName: "adminToken", LoginPath: "/admin/login.html"}

func runAdminGate(t *testing.T, tokens TokenVerifier, path, cookie string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "adminToken", Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := AdminGate(tokens, gateConfig, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, c, called
}

func assertRedirectToLogin(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login.html" {
		t.Fatalf("expected redirect to login page, got %q", loc)
	}
}

func TestAdminGate_AllowListBypassesCookie(t *testing.T) {
	svc := token.NewService("secret", time.Hour)
	for _, path := range []string{"/admin/login.html", "/api/admin/auth/login", "/api/admin/auth/logout"} {
		rec, _, called := runAdminGate(t, svc, path, "")
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("%s: expected pass-through, got %d", path, rec.Code)
		}
	}
}

func TestAdminGate_MissingCookieRedirects(t *testing.T) {
	rec, _, called := runAdminGate(t, token.NewService("secret", time.Hour), "/admin/index.html", "")
	if called {
		t.Fatalf("should not reach next")
	}
	assertRedirectToLogin(t, rec)
}

func TestAdminGate_InvalidCookieRedirects(t *testing.T) {
	svc := token.NewService("secret", time.Hour)
	forged := issue(t, token.NewService("other", time.Hour), token.Claims{AccountID: 1, Email: "a@example.com", Role: "admin"})

	for _, raw := range []string{"garbage", forged} {
		rec, _, called := runAdminGate(t, svc, "/api/admin/products", raw)
		if called {
			t.Fatalf("should not reach next")
		}
		assertRedirectToLogin(t, rec)
	}
}

func TestAdminGate_EndUserTokenRedirects(t *testing.T) {
	svc := token.NewService("secret", time.Hour)
	userToken := issue(t, svc, token.Claims{AccountID: 3, Email: "shopper@example.com", Name: "Shopper"})

	rec, _, called := runAdminGate(t, svc, "/admin/index.html", userToken)
	if called {
		t.Fatalf("end-user token must not open the admin panel")
	}
	assertRedirectToLogin(t, rec)
}

func TestAdminGate_ValidCookieSetsIdentity(t *testing.T) {
	svc := token.NewService("secret", time.Hour)
	adminToken := issue(t, svc, token.Claims{AccountID: 9, Email: "root@example.com", Role: "superadmin"})

	rec, c, called := runAdminGate(t, svc, "/admin/index.html", adminToken)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
	claims, ok := Identity(c)
	if !ok || claims.AccountID != 9 || claims.Role != "superadmin" {
		t.Fatalf("unexpected identity: %+v", claims)
	}
}
