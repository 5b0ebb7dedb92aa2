package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/nsepulse/internal/metrics"
	"github.com/guttosm/nsepulse/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions carries the transport settings of NewRouter.
type RouterOptions struct {
	RequestTimeout time.Duration    // per-request deadline; <= 0 disables it
	RateRPS        float64          // per-client requests per second; <= 0 disables limiting
	RateBurst      int              // per-client burst
	Metrics        *metrics.Metrics // nil disables /metrics and request instrumentation
}

// NewRouter creates a Gin engine with routes configured.
// It receives handlers with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Metrics, Recovery, ErrorHandler, RateLimiter).
//   - Adds request timeout handling.
//   - Mounts Swagger docs (/swagger/*any) and the prometheus endpoint (/metrics).
//   - Configures query routes (/api/...) and, when admin is non-nil, operator routes (/api/admin/...).
//
// Note:
//   - Health and readiness endpoints are registered in app.InitializeApp().
//
// Parameters:
//   - handler (*Handler): The query endpoints.
//   - admin (*AdminHandler): Operator endpoints, may be nil.
//   - opts (RouterOptions): Transport settings.
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler, admin *AdminHandler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	// Metrics wraps Recovery and ErrorHandler so it observes the final status.
	router.Use(middleware.RequestID(), middleware.RequestLogger())
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
	}
	router.Use(
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(opts.RateRPS, opts.RateBurst),
	)

	// ─── Timeout ──────────────────────────────────
	if opts.RequestTimeout > 0 {
		router.Use(middleware.Timeout(opts.RequestTimeout))
	}

	// ─── Swagger / Metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// ─── API ──────────────────────────────────────
	api := router.Group("/api")
	{
		api.GET("/company/:symbol/metrics/:date", handler.GetCompanyMetrics)
		api.GET("/company/:symbol/history", handler.GetCompanyHistory)
		api.GET("/market/overview/:date", handler.GetMarketOverview)
		api.GET("/market/trends", handler.GetMarketTrends)
		api.GET("/top-gainers/:date", handler.GetTopGainers)
		api.GET("/top-losers/:date", handler.GetTopLosers)
		api.GET("/volatility-leaders/:date", handler.GetVolatilityLeaders)
		api.GET("/sector-performance/:date", handler.GetSectorPerformance)
	}

	if admin != nil {
		api.POST("/admin/materialize/:date", admin.Materialize)
	}

	return router
}
