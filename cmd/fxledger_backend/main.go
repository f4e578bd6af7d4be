package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fxledger/fxledger/internal/adapters/database/pgsql"
	"github.com/fxledger/fxledger/internal/adapters/feeds"
	"github.com/fxledger/fxledger/internal/adapters/rates"
	"github.com/fxledger/fxledger/internal/adapters/secrets"
	"github.com/fxledger/fxledger/internal/core/services"
	"github.com/fxledger/fxledger/internal/handlers"
	"github.com/fxledger/fxledger/internal/middleware"
	"github.com/fxledger/fxledger/internal/platform/scheduler"
	"github.com/fxledger/fxledger/internal/utils"
	"github.com/fxledger/fxledger/pkg/config"
	"github.com/fxledger/fxledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title FXLedger Backend API
// @version 1.0
// @description Multi-currency ledger posting and bank feed reconciliation engine.

// @host localhost:8080
// @BasePath /
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Collaborator adapters behind the provider ports
	secretStore, err := secrets.NewSecretboxStore(cfg.SecretStoreKey)
	if err != nil {
		logger.Error("Failed to initialize secret store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	rateProvider := rates.NewHTTPRateProvider(cfg.RateSourceURL, cfg.RateSourceAPIKey, cfg.RateFetchTimeout)
	feedProvider := feeds.NewHTTPFeedProvider(secretStore, cfg.FeedFetchTimeout)

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, secretStore, rateProvider, feedProvider)

	// Log every successful refresh through the cache-owned subscription, so
	// manual refreshes surface the same way scheduled ones do.
	rateEvents, unsubscribe := serviceContainer.Rate.Subscribe()
	defer unsubscribe()
	go func() {
		for ev := range rateEvents {
			logger.Info("Exchange rates refreshed",
				slog.String("base", ev.Base),
				slog.Int("currencies", ev.Currencies),
				slog.Time("refreshed_at", ev.RefreshedAt))
		}
	}()

	// Warm the rate cache before the first request. Failure is tolerable:
	// lookups fall back to persisted rows and retry the provider on demand.
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), cfg.RateFetchTimeout)
	if _, err := serviceContainer.Rate.Refresh(warmCtx); err != nil {
		logger.Warn("Initial rate refresh failed", slog.String("error", err.Error()))
	}
	cancelWarm()

	sched := scheduler.New(cfg, repos.ConnectionRepo, serviceContainer.Ingestion, serviceContainer.Rate, serviceContainer.Revaluation, logger)
	if err := sched.Start(context.Background()); err != nil {
		logger.Error("Failed to start scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	analytics := utils.NewAnalyticsClient(cfg.PosthogAPIKey, logger)
	defer analytics.Close()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Actor-ID")

	// Global middleware (logging, recovery, CORS, audit actor, analytics)
	r.Use(
		middleware.RequestLogger(logger),
		gin.Recovery(),
		cors.New(corsConfig),
		middleware.ActorMiddleware(),
		middleware.Analytics(analytics),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, sched)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}

	// Stop the scheduler and wait for in-flight cycles
	sched.Stop()

	logger.Info("Server exited")
}

// runMigrations applies all pending "up" migrations from the migrations
// directory against the configured database.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	// Migrations run on a short-lived database/sql handle over the same
	// pgx stdlib driver the pool uses.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
