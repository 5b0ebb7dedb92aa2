package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/nsepulse/internal/domain/dto"
	"github.com/guttosm/nsepulse/internal/domain/models"
)

// Replayer runs a materialization for one date on demand.
type Replayer interface {
	RunFor(ctx context.Context, date time.Time) (models.MaterializationResult, error)
}

// AdminHandler exposes operator actions.
type AdminHandler struct {
	replayer Replayer
}

func NewAdminHandler(r Replayer) *AdminHandler {
	return &AdminHandler{replayer: r}
}

// Materialize godoc
// @Summary      Materialize a trade date
// @Description  Runs the aggregator for one date. Existing derived rows are kept, so repeating the call is safe.
// @Tags         admin
// @Produce      json
// @Param        date  path      string  true  "Trade date (YYYY-MM-DD)" example(2024-01-02)
// @Success      200   {object}  dto.MaterializeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Already running for this date"
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/admin/materialize/{date} [post]
func (h *AdminHandler) Materialize(c *gin.Context) {
	var uri dateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		bindError(c, err)
		return
	}
	date, err := models.ParseTradeDate("date", uri.Date)
	if err != nil {
		_ = c.Error(err)
		return
	}

	res, err := h.replayer.RunFor(c.Request.Context(), date)
	if err != nil {
		fail(c, err, "Materialization failed")
		return
	}
	c.JSON(http.StatusOK, dto.MaterializeResponse{
		Date:                  res.TradeDate.Format(models.DateLayout),
		FactsRead:             res.FactsRead,
		CompanyMetricsWritten: res.CompanyMetricsWritten,
		CompanyMetricsSkipped: res.CompanyMetricsSkipped,
		OverviewWritten:       res.OverviewWritten,
		DurationMillis:        res.Duration.Milliseconds(),
	})
}
