package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/nsepulse/internal/domain/models"
)

const (
	companyMetricColumns = `symbol, trade_date, open, close, high, low, volume, returns, volatility`

	companyMetricSQL = `SELECT ` + companyMetricColumns + `
		FROM company_metrics
		WHERE symbol = $1 AND trade_date = $2`

	companyHistorySQL = `SELECT ` + companyMetricColumns + `
		FROM company_metrics
		WHERE symbol = $1 AND trade_date >= $2 AND trade_date <= $3
		ORDER BY trade_date ASC`

	marketOverviewSQL = `
		SELECT trade_date, total_volume, advancers, decliners, unchanged, market_cap
		FROM market_overview
		WHERE trade_date = $1`

	snapshotsSQL = `
		SELECT s.id, c.symbol, c.name, c.sector, s.daily_return, s.volatility_30d
		FROM daily_snapshots s
		JOIN companies c ON c.id = s.company_id
		WHERE s.trade_date = $1
		ORDER BY s.id ASC`

	// The window covers the latest materialized date and the days-1 calendar days before it.
	marketTrendsSQL = `
		SELECT trade_date,
		       COUNT(*)                AS companies,
		       AVG(close)              AS avg_close,
		       AVG(returns)            AS avg_returns,
		       AVG(volatility)         AS avg_volatility,
		       SUM(volume)::BIGINT     AS total_volume
		FROM company_metrics
		WHERE trade_date > (SELECT MAX(trade_date) FROM company_metrics) - $1::INT
		GROUP BY trade_date
		ORDER BY trade_date DESC`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompanyMetric(s rowScanner) (models.CompanyMetric, error) {
	var m models.CompanyMetric
	err := s.Scan(&m.Symbol, &m.TradeDate, &m.Open, &m.Close, &m.High, &m.Low, &m.Volume, &m.Returns, &m.Volatility)
	return m, err
}

// CompanyMetric returns the derived row for (symbol, date), or nil when absent.
func (r *Repository) CompanyMetric(ctx context.Context, symbol string, tradeDate time.Time) (*models.CompanyMetric, error) {
	m, err := scanCompanyMetric(r.db.QueryRowContext(ctx, companyMetricSQL, symbol, tradeDate))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get company metric", err)
	}
	return &m, nil
}

// CompanyHistory returns the symbol's derived rows with start <= trade_date <= end, oldest first.
func (r *Repository) CompanyHistory(ctx context.Context, symbol string, start, end time.Time) ([]models.CompanyMetric, error) {
	rows, err := r.db.QueryContext(ctx, companyHistorySQL, symbol, start, end)
	if err != nil {
		return nil, classify("list company history", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.CompanyMetric, 0)
	for rows.Next() {
		m, err := scanCompanyMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company metric: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list company history", err)
	}
	return out, nil
}

// MarketOverview returns the derived overview for the date, or nil when absent.
func (r *Repository) MarketOverview(ctx context.Context, tradeDate time.Time) (*models.MarketOverview, error) {
	var o models.MarketOverview
	err := r.db.QueryRowContext(ctx, marketOverviewSQL, tradeDate).
		Scan(&o.TradeDate, &o.TotalVolume, &o.Advancers, &o.Decliners, &o.Unchanged, &o.MarketCap)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get market overview", err)
	}
	return &o, nil
}

// Snapshots returns every snapshot of the date joined to its company, in insertion order.
func (r *Repository) Snapshots(ctx context.Context, tradeDate time.Time) ([]models.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, snapshotsSQL, tradeDate)
	if err != nil {
		return nil, classify("list snapshots", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.Snapshot, 0)
	for rows.Next() {
		var s models.Snapshot
		if err := rows.Scan(&s.ID, &s.Symbol, &s.Name, &s.Sector, &s.DailyReturn, &s.Volatility30d); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list snapshots", err)
	}
	return out, nil
}

// MarketTrends averages company metrics per trade date over the most recent days
// calendar days of derived data, newest first.
func (r *Repository) MarketTrends(ctx context.Context, days int) ([]models.MarketTrend, error) {
	rows, err := r.db.QueryContext(ctx, marketTrendsSQL, days)
	if err != nil {
		return nil, classify("list market trends", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.MarketTrend, 0)
	for rows.Next() {
		var t models.MarketTrend
		if err := rows.Scan(&t.TradeDate, &t.Companies, &t.AvgClose, &t.AvgReturns, &t.AvgVolatility, &t.TotalVolume); err != nil {
			return nil, fmt.Errorf("scan market trend: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list market trends", err)
	}
	return out, nil
}
