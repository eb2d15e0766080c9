package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/workledger/timesheet-service/docs"
	"github.com/workledger/timesheet-service/internal/api/handler"
	"github.com/workledger/timesheet-service/internal/core/service"
	workledgermongo "github.com/workledger/timesheet-service/internal/infrastructure/db/mongo"
	workledgerredis "github.com/workledger/timesheet-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("workledger"))

	// --- Dependencies ---
	repo := workledgermongo.NewWorkEntryRepository(db)
	idem := workledgerredis.NewIdempotencyStore(rdb)
	entryService := service.NewWorkEntryService(repo, idem, log)
	entryHandler := handler.NewWorkEntryHandler(entryService)

	// --- Work entry routes ---
	entries := e.Group("/api/v1/work-entries")
	entries.POST("", entryHandler.Create)
	entries.GET("", entryHandler.List)
	entries.GET("/date-range", entryHandler.ListByDateRange)
	entries.GET("/date/:date", entryHandler.ListByDate)
	entries.GET("/status/:status", entryHandler.ListByStatus)
	entries.GET("/hours/total", entryHandler.TotalHours)
	entries.GET("/:id", entryHandler.Get)
	entries.PUT("/:id", entryHandler.Update)
	entries.PATCH("/:id/submit", entryHandler.Submit)
	entries.PATCH("/:id/lock", entryHandler.Lock)
	entries.DELETE("/:id", entryHandler.Delete)
	entries.GET("/:id/can-modify", entryHandler.CanModify)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
