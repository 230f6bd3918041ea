package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/alvearium/accounts-api/internal/api/handler"
	"github.com/alvearium/accounts-api/internal/api/middleware"
	"github.com/alvearium/accounts-api/internal/core/ports"
	"github.com/alvearium/accounts-api/internal/core/service"
	"github.com/alvearium/accounts-api/internal/infrastructure/config"
	mysqldb "github.com/alvearium/accounts-api/internal/infrastructure/db/mysql"
	rediscache "github.com/alvearium/accounts-api/internal/infrastructure/db/redis"
	"github.com/alvearium/accounts-api/internal/pkg/profanity"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil, in which case the leaderboard cache is disabled.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
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
	userRepo := mysqldb.NewUserRepository(db)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTRefreshSecret)

	var cache ports.ScoreCache
	if rdb != nil {
		cache = rediscache.NewScoresCache(rdb)
	}

	userService := service.NewUserService(userRepo, tokenService, profanity.NewFilter(), cache, log)
	userHandler := handler.NewUserHandler(userService)
	authMiddleware := middleware.Auth(tokenService)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.POST("/refresh", userHandler.Refresh)
	users.GET("", userHandler.List)
	users.GET("/scores/all", userHandler.TopScores)
	users.GET("/:email", userHandler.GetByEmail)
	users.DELETE("/:id", userHandler.Delete, authMiddleware)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
