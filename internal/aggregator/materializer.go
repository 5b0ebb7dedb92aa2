package aggregator

import (
	"context"
	"time"

	"github.com/guttosm/nsepulse/internal/apperrors"
	"github.com/guttosm/nsepulse/internal/domain/models"
	"github.com/guttosm/nsepulse/internal/logger"
	"github.com/guttosm/nsepulse/internal/metrics"
	"github.com/guttosm/nsepulse/internal/storage"
	"github.com/rs/zerolog"
)

// Materializer turns the price facts of one trade date into derived rows.
type Materializer struct {
	store   storage.MetricsStore
	metrics *metrics.Metrics
	log     zerolog.Logger
	now     func() time.Time
}

// NewMaterializer builds a Materializer. m may be nil.
func NewMaterializer(store storage.MetricsStore, m *metrics.Metrics) *Materializer {
	return &Materializer{
		store:   store,
		metrics: m,
		log:     logger.Component("aggregator"),
		now:     time.Now,
	}
}

// Materialize derives and stores the company metrics and market overview for
// tradeDate in one transaction. Keys that already exist are skipped, so running
// it again for the same date writes nothing. A date without facts succeeds with
// zero rows.
//
// Errors:
//   - *apperrors.TransientStoreError when the store is unreachable or times out.
//   - any other store error, wrapped with the failing operation.
//
// On error nothing from this run is persisted and the returned counts are zero.
func (m *Materializer) Materialize(ctx context.Context, tradeDate time.Time) (models.MaterializationResult, error) {
	date := models.TruncateToDate(tradeDate)
	started := m.now()

	var res models.MaterializationResult
	err := m.store.Materialize(ctx, date, func(ctx context.Context, tx storage.MaterializationTx) error {
		res = models.MaterializationResult{TradeDate: date}

		facts, err := tx.PriceFactsForDate(ctx, date)
		if err != nil {
			return err
		}
		res.FactsRead = len(facts)
		if len(facts) == 0 {
			return nil
		}

		rows := ComputeCompanyMetrics(date, facts)
		written, err := tx.InsertCompanyMetrics(ctx, rows)
		if err != nil {
			return err
		}
		res.CompanyMetricsWritten = written
		res.CompanyMetricsSkipped = len(rows) - written

		if overview := ComputeMarketOverview(date, facts); overview != nil {
			if res.OverviewWritten, err = tx.InsertMarketOverview(ctx, *overview); err != nil {
				return err
			}
		}
		return nil
	})
	elapsed := m.now().Sub(started)

	if err != nil {
		outcome := metrics.OutcomeFailed
		if apperrors.IsTransient(err) {
			outcome = metrics.OutcomeTransient
		}
		m.metrics.ObserveMaterialization(outcome, elapsed)
		m.log.Error().
			Err(err).
			Str("trade_date", date.Format(models.DateLayout)).
			Str("outcome", outcome).
			Dur("duration", elapsed).
			Msg("materialization failed")
		return models.MaterializationResult{TradeDate: date, Duration: elapsed}, err
	}

	res.TradeDate = date
	res.Duration = elapsed
	m.metrics.ObserveMaterialization(metrics.OutcomeSuccess, elapsed)
	m.metrics.AddRows("company_metrics", res.CompanyMetricsWritten, res.CompanyMetricsSkipped)
	overviewWritten, overviewSkipped := 0, 0
	if res.OverviewWritten {
		overviewWritten = 1
	} else if res.FactsRead > 0 {
		overviewSkipped = 1
	}
	m.metrics.AddRows("market_overview", overviewWritten, overviewSkipped)

	m.log.Info().
		Str("trade_date", date.Format(models.DateLayout)).
		Int("facts", res.FactsRead).
		Int("company_metrics_written", res.CompanyMetricsWritten).
		Int("company_metrics_skipped", res.CompanyMetricsSkipped).
		Bool("overview_written", res.OverviewWritten).
		Dur("duration", elapsed).
		Msg("materialization complete")
	return res, nil
}
