package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.EndUser, error)
	loginFn    func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error)
	profileFn  func(ctx context.Context, userID int64) (*domain.EndUser, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.EndUser, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Profile(ctx context.Context, userID int64) (*domain.EndUser, error) {
	return s.profileFn(ctx, userID)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.EndUser, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.Password != "secret" {
				t.Fatalf("unexpected args: %+v", in)
			}
			if in.RemoteIP != "192.0.2.10" {
				t.Fatalf("expected remote ip, got %q", in.RemoteIP)
			}
			return &domain.EndUser{ID: 1, Name: in.Name, Email: in.Email, PasswordHash: "hash"}, nil
		},
	}
	h := NewAuthHandler(stub, &stubLimiter{}, zerolog.Nop())

	req := jsonRequest(http.MethodPost, "/api/auth/register", `{"name":"Alice","email":"alice@example.com","password":"secret"}`)
	rec := serve(newTestEcho(), h.Register, req, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	decode(t, rec, &resp)
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["name"] != "Alice" || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
	if _, hasToken := resp["token"]; hasToken {
		t.Fatalf("registration must not issue a token")
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.EndUser, error) {
			return nil, domain.ErrConflict
		},
	}
	h := NewAuthHandler(stub, &stubLimiter{}, zerolog.Nop())

	req := jsonRequest(http.MethodPost, "/api/auth/register", `{"name":"Bob","email":"bob@example.com","password":"pw"}`)
	rec := serve(newTestEcho(), h.Register, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.EndUser, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, &stubLimiter{}, zerolog.Nop())

	for _, body := range []string{
		"not-json",
		`{"email":"a@example.com","password":"pw"}`,
		`{"name":"A","email":"not-an-email","password":"pw"}`,
		`{"name":"A","email":"a@example.com"}`,
	} {
		rec := serve(newTestEcho(), h.Register, jsonRequest(http.MethodPost, "/api/auth/register", body), nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	expires := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubAuthService{
		loginFn: func(_ context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
			if in.Email != "alice@example.com" || in.Password != "secret" {
				t.Fatalf("unexpected args: %+v", in)
			}
			return &ports.LoginResult{
				Token:     "token123",
				ExpiresAt: expires,
				User:      &domain.EndUser{ID: 4, Name: "Alice", Email: in.Email},
			}, nil
		},
	}
	limiter := &stubLimiter{}
	h := NewAuthHandler(stub, limiter, zerolog.Nop())

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret"}`)
	rec := serve(newTestEcho(), h.Login, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	decode(t, rec, &resp)
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["name"] != "Alice" || user["id"] != float64(4) {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "user:192.0.2.10:alice@example.com" {
		t.Fatalf("unexpected limiter keys: %v", limiter.keys)
	}
	if limiter.resets != 1 || limiter.failures != 0 {
		t.Fatalf("expected a reset after success, got resets=%d failures=%d", limiter.resets, limiter.failures)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, ports.LoginInput) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	limiter := &stubLimiter{}
	h := NewAuthHandler(stub, limiter, zerolog.Nop())

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"bad"}`)
	rec := serve(newTestEcho(), h.Login, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if limiter.failures != 1 {
		t.Fatalf("expected the failure to be recorded")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, ports.LoginInput) (*ports.LoginResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, &stubLimiter{}, zerolog.Nop())

	for _, body := range []string{`{"email":"alice@example.com"}`, `{"password":"pw"}`, "{"} {
		rec := serve(newTestEcho(), h.Login, jsonRequest(http.MethodPost, "/api/auth/login", body), nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_Login_LockedOut(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, ports.LoginInput) (*ports.LoginResult, error) {
			t.Fatalf("locked out attempts must not reach the service")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, &stubLimiter{locked: true, retry: 90*time.Second + 300*time.Millisecond}, zerolog.Nop())

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"pw"}`)
	rec := serve(newTestEcho(), h.Login, req, nil)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "91" {
		t.Fatalf("expected Retry-After 91, got %q", got)
	}
}

func TestAuthHandler_Login_LimiterOutageFailsOpen(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
			return &ports.LoginResult{Token: "t", User: &domain.EndUser{ID: 1, Email: in.Email}}, nil
		},
	}
	h := NewAuthHandler(stub, &stubLimiter{allowErr: errors.New("redis down")}, zerolog.Nop())

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"pw"}`)
	rec := serve(newTestEcho(), h.Login, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 while the limiter is down, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(_ context.Context, id int64) (*domain.EndUser, error) {
			if id != 12 {
				return nil, domain.ErrNotFound
			}
			return &domain.EndUser{ID: 12, Name: "Carol", Email: "carol@example.com", CreatedAt: time.Now()}, nil
		},
	}
	h := NewAuthHandler(stub, &stubLimiter{}, zerolog.Nop())
	e := newTestEcho()

	rec := serve(e, h.Me, jsonRequest(http.MethodGet, "/api/auth/me", ""), withIdentity(12, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	decode(t, rec, &resp)
	if resp["email"] != "carol@example.com" || resp["created_at"] == nil {
		t.Fatalf("unexpected profile: %+v", resp)
	}

	rec = serve(e, h.Me, jsonRequest(http.MethodGet, "/api/auth/me", ""), withIdentity(99, ""))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a deleted account, got %d", rec.Code)
	}

	rec = serve(e, h.Me, jsonRequest(http.MethodGet, "/api/auth/me", ""), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", rec.Code)
	}
}

func TestAttemptKey_FoldsEmail(t *testing.T) {
	a := attemptKey(variantUser, "10.0.0.1", " Alice@Example.com ")
	b := attemptKey(variantUser, "10.0.0.1", "alice@example.com")
	if a != b {
		t.Fatalf("expected equal keys, got %q and %q", a, b)
	}
	if attemptKey(variantAdmin, "10.0.0.1", "alice@example.com") == b {
		t.Fatalf("variants must not share a bucket")
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	cases := map[time.Duration]string{
		0:                       "1",
		200 * time.Millisecond:  "1",
		15 * time.Minute:        "900",
		1500 * time.Millisecond: "2",
	}
	for in, want := range cases {
		if got := retryAfterSeconds(in); got != want {
			t.Fatalf("retryAfterSeconds(%v) = %s, want %s", in, got, want)
		}
	}
}
