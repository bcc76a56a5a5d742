package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("unexpected defaults: port %q ttl %v", cfg.Port, cfg.TokenTTL)
	}
	if cfg.Admin.CookieName != "adminToken" || cfg.Admin.LoginPath != "/admin/login.html" {
		t.Fatalf("unexpected admin defaults: %+v", cfg.Admin)
	}
	if cfg.Login.MaxAttempts != 5 || cfg.Login.Window != 15*time.Minute {
		t.Fatalf("unexpected login defaults: %+v", cfg.Login)
	}

	secret, insecure := cfg.SigningSecret()
	if !insecure || secret != InsecureDefaultSecret {
		t.Fatalf("expected insecure fallback, got %q %v", secret, insecure)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"ENV":          "production",
		"DB_DRIVER":    "postgres",
		"TOKEN_TTL":    "30m",
		"CORS_ORIGINS": "https://shop.example.com, ,https://admin.example.com",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if secret, insecure := cfg.SigningSecret(); insecure || secret != "s3cret" {
		t.Fatalf("unexpected secret %q %v", secret, insecure)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production")
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected ttl %v", cfg.TokenTTL)
	}
	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[1] != "https://admin.example.com" {
		t.Fatalf("unexpected origins %v", origins)
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"DB_DRIVER": "oracle"}))
	if err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
