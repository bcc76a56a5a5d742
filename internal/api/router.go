package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/shopfront/storefront/docs"
	"github.com/shopfront/storefront/internal/api/handler"
	"github.com/shopfront/storefront/internal/api/middleware"
	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

// Options holds the transport settings of the router.
type Options struct {
	AllowedOrigins []string
	AdminCookie    handler.AdminCookieConfig
	AdminLoginPath string
	// AdminStaticDir holds the admin panel pages served under /admin. Empty
	// disables the static panel.
	AdminStaticDir string

	// Registry receives the request metrics. Nil uses the default Prometheus
	// registry, which also holds the custom storefront metrics.
	Registry *prometheus.Registry
}

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Log     zerolog.Logger
	Tokens  middleware.TokenVerifier
	Limiter ports.LoginLimiter

	Auth       ports.AuthService
	AdminAuth  ports.AdminAuthService
	AdminUsers ports.AdminUserService
	Catalog    ports.CatalogService
	Orders     ports.OrderService

	Health map[string]handler.HealthCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "storefront",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// --- Dependencies ---
	authLog := deps.Log.With().Str("component", "auth").Logger()
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Limiter, authLog)
	adminAuthHandler := handler.NewAdminAuthHandler(deps.AdminAuth, deps.Limiter, opts.AdminCookie, authLog)
	adminUserHandler := handler.NewAdminUserHandler(deps.AdminUsers)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	healthHandler := handler.NewHealthHandler(deps.Health)

	bearer := middleware.Bearer(deps.Tokens, authLog)
	adminGate := middleware.AdminGate(deps.Tokens, middleware.AdminGateConfig{
		CookieName: opts.AdminCookie.Name,
		LoginPath:  opts.AdminLoginPath,
	}, authLog)

	// --- Storefront auth ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, bearer)

	// --- Storefront catalog (public) ---
	e.GET("/api/categories/public", catalogHandler.ListPublicCategories)
	e.GET("/api/products", catalogHandler.ListProducts)
	e.GET("/api/products/:id", catalogHandler.GetProduct)

	// --- Orders (signed-in customers) ---
	orders := e.Group("/api/orders", bearer)
	orders.POST("/create-order", orderHandler.Create)
	orders.POST("/capture-order", orderHandler.Capture)
	orders.GET("", orderHandler.ListMine)

	// --- Admin API ---
	e.POST("/api/admin/auth/login", adminAuthHandler.Login)
	e.POST("/api/admin/auth/logout", adminAuthHandler.Logout)

	admin := e.Group("/api/admin", adminGate)

	users := admin.Group("/users", middleware.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin))
	users.GET("", adminUserHandler.List)
	users.POST("", adminUserHandler.Create)
	users.GET("/:id", adminUserHandler.Get)
	users.PUT("/:id", adminUserHandler.Update)
	users.DELETE("/:id", adminUserHandler.Delete)

	admin.GET("/categories", catalogHandler.ListCategories)
	admin.POST("/categories", catalogHandler.CreateCategory)
	admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)

	admin.GET("/attributes", catalogHandler.ListAttributes)
	admin.POST("/attributes", catalogHandler.CreateAttribute)
	admin.DELETE("/attributes/:id", catalogHandler.DeleteAttribute)

	admin.GET("/products", catalogHandler.ListAdminProducts)
	admin.POST("/products", catalogHandler.CreateProduct)
	admin.PUT("/products/:id", catalogHandler.UpdateProduct)
	admin.DELETE("/products/:id", catalogHandler.DeleteProduct)

	admin.GET("/orders", orderHandler.ListAll)

	// --- Admin panel (static pages behind the cookie) ---
	if opts.AdminStaticDir != "" {
		e.Group("/admin", adminGate).Static("/", opts.AdminStaticDir)
	}

	// --- Operational (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error()
			case v.Status >= http.StatusBadRequest:
				ev = log.Warn()
			}
			if v.Error != nil {
				ev = ev.Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
