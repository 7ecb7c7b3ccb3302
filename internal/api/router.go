package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/timecardhq/timecard-api/docs"
	"github.com/timecardhq/timecard-api/internal/api/handler"
	"github.com/timecardhq/timecard-api/internal/api/middleware"
	"github.com/timecardhq/timecard-api/internal/core/domain"
	"github.com/timecardhq/timecard-api/internal/core/ports"
	"github.com/timecardhq/timecard-api/internal/core/service"
	mongodb "github.com/timecardhq/timecard-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The publisher is the async hand-off the engine enqueues events to; the
// notifier is the subscribe side consumed by the event stream.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	jwtSecret string,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("timecard"))

	// --- Dependencies ---
	entryRepo := mongodb.NewEntryRepository(db)
	periodRepo := mongodb.NewPeriodRepository(db)
	entryService := service.NewEntryService(entryRepo, periodRepo, publisher, log)
	periodService := service.NewPeriodService(periodRepo, log)

	entryHandler := handler.NewEntryHandler(entryService)
	periodHandler := handler.NewPeriodHandler(periodService)
	streamHandler := handler.NewStreamHandler(notifier)

	// --- Probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated API ---
	contractorOnly := middleware.RequireRole(domain.RoleContractor)
	managerOnly := middleware.RequireRole(domain.RoleManager)
	anyRole := middleware.RequireRole(domain.RoleContractor, domain.RoleManager)

	v1 := e.Group("/v1", middleware.Auth(jwtSecret))

	v1.POST("/entries", entryHandler.Create, contractorOnly)
	v1.GET("/entries", entryHandler.List, anyRole)
	v1.GET("/entries/summary", entryHandler.Summary, anyRole)
	v1.POST("/entries/bulk-approve", entryHandler.BulkApprove, managerOnly)
	v1.GET("/entries/:id", entryHandler.Get, anyRole)
	v1.POST("/entries/:id/submit", entryHandler.Submit, contractorOnly)
	v1.PATCH("/entries/:id/status", entryHandler.SetStatus, managerOnly)
	v1.DELETE("/entries/:id", entryHandler.Delete, anyRole)

	v1.GET("/periods", periodHandler.List, anyRole)
	v1.GET("/periods/current", periodHandler.Current, anyRole)

	v1.GET("/stream", streamHandler.Stream, anyRole)

	return e
}
