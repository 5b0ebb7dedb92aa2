package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/nsepulse/internal/service"
)

// Handler provides the read-only HTTP endpoints over materialized metrics.
//
// Responsibilities:
//   - Bind and validate path and query parameters
//   - Delegate to the query service
//   - Return JSON; failures are attached with c.Error and rendered by middleware.ErrorHandler
type Handler struct {
	svc service.QueryService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.QueryService): query layer used by every endpoint.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.QueryService) *Handler {
	registerValidators()
	return &Handler{svc: svc}
}

// bindError attaches a binding failure so the error middleware answers 400.
func bindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
}

// fail attaches a service failure with a user-facing message.
func fail(c *gin.Context, err error, message string) {
	_ = c.Error(err).SetMeta(message)
}

// GetCompanyMetrics godoc
// @Summary      Company metrics for a date
// @Description  Derived open/close/high/low/volume/returns/volatility of one symbol. A valid key without data answers 200 with an empty list and a message.
// @Tags         company
// @Produce      json
// @Param        symbol  path      string  true  "Ticker symbol" example(RELIANCE)
// @Param        date    path      string  true  "Trade date (YYYY-MM-DD)" example(2024-01-02)
// @Success      200     {object}  dto.CompanyMetricsResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/company/{symbol}/metrics/{date} [get]
func (h *Handler) GetCompanyMetrics(c *gin.Context) {
	var uri companyMetricsURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.svc.CompanyMetrics(c.Request.Context(), uri.Symbol, uri.Date)
	if err != nil {
		fail(c, err, "Failed to load company metrics")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCompanyHistory godoc
// @Summary      Company history
// @Description  Derived rows of one symbol with start <= date <= end, oldest first. Unknown symbols yield an empty list.
// @Tags         company
// @Produce      json
// @Param        symbol  path      string  true  "Ticker symbol" example(RELIANCE)
// @Param        start   query     string  true  "First date, inclusive (YYYY-MM-DD)" example(2024-01-01)
// @Param        end     query     string  true  "Last date, inclusive (YYYY-MM-DD)" example(2024-01-31)
// @Success      200     {array}   dto.CompanyMetricRow
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/company/{symbol}/history [get]
func (h *Handler) GetCompanyHistory(c *gin.Context) {
	var uri symbolURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	rows, err := h.svc.CompanyHistory(c.Request.Context(), uri.Symbol, q.Start, q.End)
	if err != nil {
		fail(c, err, "Failed to load company history")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetMarketOverview godoc
// @Summary      Market overview for a date
// @Description  Total volume, advancers/decliners/unchanged and market cap. A date without data answers 200 with overview null and a message.
// @Tags         market
// @Produce      json
// @Param        date  path      string  true  "Trade date (YYYY-MM-DD)" example(2024-01-02)
// @Success      200   {object}  dto.MarketOverviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/market/overview/{date} [get]
func (h *Handler) GetMarketOverview(c *gin.Context) {
	var uri dateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.svc.MarketOverview(c.Request.Context(), uri.Date)
	if err != nil {
		fail(c, err, "Failed to load market overview")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetMarketTrends godoc
// @Summary      Market trends
// @Description  Per-date averages across companies over the most recent period calendar days of data, newest first.
// @Tags         market
// @Produce      json
// @Param        period  query     int  false  "Window in calendar days (default 30)" example(30)
// @Success      200     {array}   dto.TrendPoint
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/market/trends [get]
func (h *Handler) GetMarketTrends(c *gin.Context) {
	var q trendsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	points, err := h.svc.MarketTrends(c.Request.Context(), q.Period)
	if err != nil {
		fail(c, err, "Failed to load market trends")
		return
	}
	c.JSON(http.StatusOK, points)
}

// GetTopGainers godoc
// @Summary      Top gainers
// @Description  Up to 5 companies by daily return, highest first. Equal returns keep insertion order.
// @Tags         leaderboards
// @Produce      json
// @Param        date  path      string  true  "Trade date (YYYY-MM-DD)" example(2024-01-02)
// @Success      200   {array}   dto.RankedReturn
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/top-gainers/{date} [get]
func (h *Handler) GetTopGainers(c *gin.Context) {
	var uri dateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}

	rows, err := h.svc.TopGainers(c.Request.Context(), uri.Date)
	if err != nil {
		fail(c, err, "Failed to load top gainers")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetTopLosers godoc
// @Summary      Top losers
// @Description  Up to 5 companies by daily return, lowest first. Equal returns keep insertion order.
// @Tags         leaderboards
// @Produce      json
// @Param        date  path      string  true  "Trade date (YYYY-MM-DD)" example(2024-01-02)
// @Success      200   {array}   dto.RankedReturn
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/top-losers/{date} [get]
func (h *Handler) GetTopLosers(c *gin.Context) {
	var uri dateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}

	rows, err := h.svc.TopLosers(c.Request.Context(), uri.Date)
	if err != nil {
		fail(c, err, "Failed to load top losers")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetVolatilityLeaders godoc
// @Summary      Volatility leaders
// @Description  Up to 5 companies by 30-day volatility, highest first.
// @Tags         leaderboards
// @Produce      json
// @Param        date  path      string  true  "Trade date (YYYY-MM-DD)" example(2024-01-02)
// @Success      200   {array}   dto.VolatilityLeader
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/volatility-leaders/{date} [get]
func (h *Handler) GetVolatilityLeaders(c *gin.Context) {
	var uri dateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}

	rows, err := h.svc.VolatilityLeaders(c.Request.Context(), uri.Date)
	if err != nil {
		fail(c, err, "Failed to load volatility leaders")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetSectorPerformance godoc
// @Summary      Sector performance
// @Description  Average daily return per sector, best first.
// @Tags         leaderboards
// @Produce      json
// @Param        date  path      string  true  "Trade date (YYYY-MM-DD)" example(2024-01-02)
// @Success      200   {array}   dto.SectorPerformance
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/sector-performance/{date} [get]
func (h *Handler) GetSectorPerformance(c *gin.Context) {
	var uri dateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}

	rows, err := h.svc.SectorPerformance(c.Request.Context(), uri.Date)
	if err != nil {
		fail(c, err, "Failed to load sector performance")
		return
	}
	c.JSON(http.StatusOK, rows)
}
