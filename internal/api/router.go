package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/applitrack/applitrack/internal/api/handler"
	"github.com/applitrack/applitrack/internal/api/middleware"
	"github.com/applitrack/applitrack/internal/core/service"
	"github.com/applitrack/applitrack/internal/infrastructure/db/postgres"
	"github.com/applitrack/applitrack/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *goredis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("applitrack"))

	// --- Dependencies ---
	sessions := redis.NewSessionRevoker(rdb)

	authRepo := postgres.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, sessions, jwtSecret, 24*time.Hour)
	authHandler := handler.NewAuthHandler(authService)

	companyRepo := postgres.NewCompanyRepository(db)
	companyService := service.NewCompanyService(companyRepo, log)
	viewService := service.NewViewService(companyRepo, log)
	companyHandler := handler.NewCompanyHandler(companyService, viewService)
	scheduleHandler := handler.NewScheduleHandler(companyService)

	authMiddleware := middleware.Auth(jwtSecret, sessions)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.PUT("/auth/credentials", authHandler.UpdateCredentials, authMiddleware)

	// --- Company and schedule routes (all owner-scoped) ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/companies", companyHandler.List)
	v1.POST("/companies", companyHandler.Create)
	v1.DELETE("/companies", companyHandler.DeleteMany)
	v1.GET("/companies/industries", companyHandler.Industries)
	v1.GET("/companies/:id", companyHandler.Detail)
	v1.PUT("/companies/:id", companyHandler.UpdateBasic)
	v1.PUT("/companies/:id/detail", companyHandler.UpdateDetail)
	v1.PUT("/companies/:id/selection", companyHandler.UpsertSelection)
	v1.POST("/companies/:id/schedules", scheduleHandler.Add)
	v1.GET("/schedules/:id", scheduleHandler.Get)
	v1.PUT("/schedules/:id", scheduleHandler.Update)
	v1.DELETE("/schedules/:id", scheduleHandler.Delete)

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
