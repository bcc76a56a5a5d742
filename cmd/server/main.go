// @title        Storefront API
// @version      1.0
// @description  Storefront and admin panel backend: accounts, catalog and checkout orders.
// @BasePath     /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/internal/api"
	"github.com/shopfront/storefront/internal/api/handler"
	"github.com/shopfront/storefront/internal/core/service"
	"github.com/shopfront/storefront/internal/infrastructure/config"
	mongostore "github.com/shopfront/storefront/internal/infrastructure/db/mongo"
	redisstore "github.com/shopfront/storefront/internal/infrastructure/db/redis"
	"github.com/shopfront/storefront/internal/infrastructure/db/sqlstore"
	"github.com/shopfront/storefront/internal/infrastructure/queue"
	"github.com/shopfront/storefront/pkg/logger"
	"github.com/shopfront/storefront/pkg/password"
	"github.com/shopfront/storefront/pkg/token"
)

const (
	serviceName     = "storefront"
	shutdownTimeout = 15 * time.Second
	probeTimeout    = 2 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: serviceName})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.OptionsFor(serviceName, cfg.Env, cfg.LogLevel))
	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Stores ---
	db, err := sqlstore.Open(sqlstore.Config{
		Driver:  cfg.Database.Driver,
		DSN:     cfg.Database.DSN,
		Verbose: !cfg.IsProduction() && cfg.LogLevel == "debug",
		Logger:  logger.Component("sqlstore"),
	})
	if err != nil {
		return err
	}
	defer func() { _ = sqlstore.Close(db) }()

	mongoClient, mongoDB, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	auditRepo := mongostore.NewAuthEventRepository(mongoDB)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("could not ensure audit indexes")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	// --- Audit trail ---
	dispatcherCtx, cancelDispatcher := context.WithCancel(context.Background())
	defer cancelDispatcher()
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, logger.Component("audit"))
	dispatcher.Start(dispatcherCtx)

	// --- Services ---
	secret, insecure := cfg.SigningSecret()
	if insecure {
		log.Warn().Msg("JWT_SECRET is not set, tokens are signed with the built-in development secret")
	}
	tokens := token.NewService(secret, cfg.TokenTTL)
	hasher := password.NewHasher()
	serviceLog := logger.Component("service")

	admins := sqlstore.NewAdminRepository(db)
	adminUsers := service.NewAdminUserService(admins, hasher, dispatcher, serviceLog)
	seeded, err := adminUsers.SeedBootstrapAdmin(ctx, cfg.Admin.BootstrapEmail, cfg.Admin.BootstrapPassword)
	if err != nil {
		return err
	}
	if seeded {
		log.Info().Str("email", cfg.Admin.BootstrapEmail).Msg("bootstrap administrator created")
	}

	deps := api.Deps{
		Log:        logger.Component("http"),
		Tokens:     tokens,
		Limiter:    redisstore.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window),
		Auth:       service.NewAuthService(sqlstore.NewUserRepository(db), hasher, tokens, dispatcher, serviceLog),
		AdminAuth:  service.NewAdminAuthService(admins, hasher, tokens, dispatcher, serviceLog),
		AdminUsers: adminUsers,
		Catalog: service.NewCatalogService(
			sqlstore.NewCategoryRepository(db),
			sqlstore.NewAttributeRepository(db),
			sqlstore.NewProductRepository(db),
		),
		Orders: service.NewOrderService(sqlstore.NewOrderRepository(db), redisstore.NewCaptureDedup(rdb), serviceLog),
		Health: map[string]handler.HealthCheck{
			"database": func(ctx context.Context) error { return sqlstore.Ping(ctx, db) },
			"mongodb":  func(ctx context.Context) error { return mongostore.Ping(ctx, mongoClient) },
			"redis":    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb, probeTimeout) },
		},
	}

	e := api.NewRouter(deps, api.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		AdminCookie: handler.AdminCookieConfig{
			Name:     cfg.Admin.CookieName,
			MaxAge:   cfg.TokenTTL,
			Secure:   cfg.IsProduction(),
			HomePath: cfg.Admin.HomePath,
		},
		AdminLoginPath: cfg.Admin.LoginPath,
		AdminStaticDir: cfg.Admin.StaticDir,
	})

	// --- Serve until signalled ---
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("audit queue not fully drained")
	}
	return nil
}
