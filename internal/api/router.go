package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/vanguox/accounts-api/docs"
	"github.com/vanguox/accounts-api/internal/api/handler"
	"github.com/vanguox/accounts-api/internal/api/middleware"
	"github.com/vanguox/accounts-api/internal/core/service"
	"github.com/vanguox/accounts-api/internal/infrastructure/config"
	mongodb "github.com/vanguox/accounts-api/internal/infrastructure/db/mongo"
	redisdb "github.com/vanguox/accounts-api/internal/infrastructure/db/redis"
	"github.com/vanguox/accounts-api/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered, and the
// audit dispatcher the caller must Start. The route gate runs on every
// request; the auth endpoints themselves are public paths.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)
	sessions := service.NewSessionService(userRepo, sessionStore, cfg.JWTSecret, cfg.Session.TTL, log)
	authService := service.NewAuthService(userRepo, sessions, log)

	auditRepo := mongodb.NewAuditRepository(db)
	dedup := redisdb.NewDedupChecker(rdb)
	dispatcher := queue.NewDispatcher(0, service.NewAuditService(auditRepo, dedup, log), log)

	cookie := handler.CookieConfig{
		Name:   cfg.Session.CookieName,
		Domain: cfg.Session.CookieDomain,
		Secure: cfg.IsProduction(),
	}
	authHandler := handler.NewAuthHandler(authService, userRepo, cookie, dispatcher)

	e.Use(middleware.Gate(sessions, cookie.Name, middleware.DefaultRoutes))

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)

	// --- Gated page routes ---
	pages := handler.NewPageHandler()
	e.GET("/", pages.Page("home"))
	e.GET("/dashboard", pages.Page("dashboard"))
	e.GET("/profile", pages.Page("profile"))
	e.GET("/settings", pages.Page("settings"))
	e.GET("/sign-in", pages.Page("sign-in"))
	e.GET("/register", pages.Page("register"))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher
}
