package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/vetclinic/clinic-api/internal/api/handler"
	"github.com/vetclinic/clinic-api/internal/api/middleware"
	"github.com/vetclinic/clinic-api/internal/core/ports"
	"github.com/vetclinic/clinic-api/internal/core/service"
	redisdb "github.com/vetclinic/clinic-api/internal/infrastructure/db/redis"
	"github.com/vetclinic/clinic-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(userRepo ports.UserRepository, pool *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("clinic"))

	// --- Dependencies ---
	registration := service.NewRegistrationService(userRepo, cfg.Registration.PasswordMinLength, cfg.Registration.BcryptCost)
	authHandler := handler.NewAuthHandler(registration)
	limiter := redisdb.NewFixedWindowLimiter(rdb)

	// --- Auth routes ---
	auth := e.Group("/api/auth", middleware.RateLimit(limiter, cfg.RateLimit.PerMinute, log))
	auth.POST("/register", authHandler.Register)

	// --- Health probes (no rate limit) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	// The swag-generated docs package is a build artifact; once committed,
	// blank-import it here so the UI can load doc.json.
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
