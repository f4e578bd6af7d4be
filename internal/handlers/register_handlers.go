package handlers

import (
	"log/slog"

	"github.com/fxledger/fxledger/cmd/docs"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/middleware"
	"github.com/fxledger/fxledger/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes wires the health check, the versioned API groups and the
// swagger UI onto the engine.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	sched SyncScheduler,
) {
	registerCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services, sched)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes groups the API under /api/v1 behind the IP rate limiter
// and hands each resource registrar its service.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	sched SyncScheduler,
) {
	v1 := r.Group("/api/v1")

	if rate, err := limiter.NewRateFromFormatted(cfg.RateLimit); err == nil {
		store := memory.NewStore()
		v1.Use(middleware.RateLimit(limiter.New(store, rate)))
	} else {
		slog.Warn("Invalid RATE_LIMIT format, rate limiting disabled", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
	}

	registerConnectionRoutes(v1, services.Connection, sched)
	registerFeedRoutes(v1, services.Ingestion, services.Categorizer)
	registerRateRoutes(v1, services.Rate)
	registerPostingRoutes(v1, services.Posting)
	registerRevaluationRoutes(v1, services.Revaluation)
	registerReportingRoutes(v1, services.Reporting)
}

// setupSwaggerRoutes serves the swagger UI outside production.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
