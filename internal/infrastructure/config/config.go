package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// InsecureDefaultSecret signs tokens when JWT_SECRET is unset. Startup logs a
// warning whenever it is in use.
const InsecureDefaultSecret = "supersecretkey"

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=2h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	// CORSOrigins is a comma separated list of storefront origins.
	CORSOrigins string `env:"CORS_ORIGINS, default=http://localhost:3000"`

	Admin    AdminConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Login    LoginConfig
	Audit    AuditConfig
}

type AdminConfig struct {
	CookieName string `env:"ADMIN_COOKIE_NAME, default=adminToken"`
	LoginPath  string `env:"ADMIN_LOGIN_PATH,  default=/admin/login.html"`
	HomePath   string `env:"ADMIN_HOME_PATH,   default=/admin/index.html"`
	StaticDir  string `env:"ADMIN_STATIC_DIR,  default=./web/admin"`

	BootstrapEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER, default=sqlite"`
	DSN    string `env:"DB_DSN,    default=file:storefront.db?_foreign_keys=on"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("load config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("load config: TOKEN_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// SigningSecret returns the configured JWT secret and whether the insecure
// fallback is in use.
func (c *Config) SigningSecret() (string, bool) {
	if c.JWTSecret == "" {
		return InsecureDefaultSecret, true
	}
	return c.JWTSecret, false
}

// AllowedOrigins splits CORSOrigins, dropping blanks.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
