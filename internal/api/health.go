package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/nsepulse/internal/domain/dto"
)

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /: Service banner.
//   - /healthz and /api/health: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (depends on database connectivity).
type HealthHandler struct {
	dbPing  func(ctx context.Context) error // Function to check database connectivity
	timeout time.Duration
}

// NewHealthHandler constructs a HealthHandler with the provided dbPing function.
//
// Parameters:
//   - dbPing (func(context.Context) error): A function used to check if the database is reachable.
//     Typically, this is the repository Ping or db.PingContext.
//
// Returns:
//   - *HealthHandler: A new handler instance.
func NewHealthHandler(dbPing func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{dbPing: dbPing, timeout: 2 * time.Second}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /: Returns a banner message.
//   - GET /healthz, GET /api/health: Always return 200 OK.
//   - GET /readyz: Returns 200 OK if dbPing succeeds, 503 if database is not reachable.
//
// Parameters:
//   - r (*gin.Engine): The Gin router to register routes on.
func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/", h.root)
	r.GET("/healthz", h.live)
	r.GET("/api/health", h.live)
	r.GET("/readyz", h.ready)
}

func (h *HealthHandler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "NSE Stock Pipeline API is live!"})
}

// Liveness probe (just checks if the service is up)
// @Summary      Liveness probe
// @Description  Always returns OK if the service is running
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Router       /api/health [get]
func (h *HealthHandler) live(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}

// Readiness probe (checks DB connection)
// @Summary      Readiness probe
// @Description  Returns ready if the service dependencies (DB) are reachable
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Failure      503  {object}  dto.StatusResponse
// @Router       /readyz [get]
func (h *HealthHandler) ready(c *gin.Context) {
	if h.dbPing != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		if err := h.dbPing(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.StatusResponse{Status: "degraded", Error: "database unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ready"})
}
