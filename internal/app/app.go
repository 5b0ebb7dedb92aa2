package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/nsepulse/config"
	"github.com/guttosm/nsepulse/internal/api"
	"github.com/guttosm/nsepulse/internal/logger"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Configures the global logger from config.AppConfig.Log.
//   - Connects to PostgreSQL using InitPostgres().
//   - Builds storage, metrics, the aggregator, the scheduler and the query layer (BuildServices).
//   - Starts the daily scheduler when enabled.
//   - Configures the Gin router with all API routes and registers health and readiness probes.
//   - Provides a cleanup function that stops the scheduler and closes the DB pool.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig
	logger.Configure(cfg.Log.Level, cfg.Log.Pretty)

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	svc, err := BuildServices(db, cfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc.Query)
	var admin *api.AdminHandler
	if cfg.Server.AdminEnabled {
		admin = api.NewAdminHandler(svc.Scheduler)
	}

	// Setup Gin router with routes
	router := api.NewRouter(handler, admin, api.RouterOptions{
		RequestTimeout: cfg.Server.RequestTimeout,
		RateRPS:        cfg.Server.RateRPS,
		RateBurst:      cfg.Server.RateBurst,
		Metrics:        svc.Metrics,
	})

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(svc.Repo.Ping)
	healthHandler.Register(router)

	if cfg.Scheduler.Enabled {
		svc.Scheduler.Start()
	}

	// Cleanup resources on shutdown
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := svc.Scheduler.Stop(ctx); err != nil {
			logger.L().Warn().Err(err).Msg("scheduler did not stop cleanly")
		}
		_ = db.Close()
	}

	return router, cleanup, nil
}
