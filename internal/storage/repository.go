package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/guttosm/nsepulse/internal/domain/models"
)

// MaterializationTx is the write-side view handed to the aggregator. Every call
// runs inside the single transaction opened by MetricsStore.Materialize.
type MaterializationTx interface {
	PriceFactsForDate(ctx context.Context, tradeDate time.Time) ([]models.PriceFact, error)
	InsertCompanyMetrics(ctx context.Context, rows []models.CompanyMetric) (int, error)
	InsertMarketOverview(ctx context.Context, o models.MarketOverview) (bool, error)
}

// MetricsStore runs one materialization unit per trade date: fn's reads and writes
// either commit together or not at all.
type MetricsStore interface {
	Materialize(ctx context.Context, tradeDate time.Time, fn func(ctx context.Context, tx MaterializationTx) error) error
}

// QueryRepository defines read-only accessors over the derived tables and the
// snapshot fact. Absent rows are (nil, nil) or an empty slice, never an error.
type QueryRepository interface {
	CompanyMetric(ctx context.Context, symbol string, tradeDate time.Time) (*models.CompanyMetric, error)
	MarketOverview(ctx context.Context, tradeDate time.Time) (*models.MarketOverview, error)
	Snapshots(ctx context.Context, tradeDate time.Time) ([]models.Snapshot, error)
	CompanyHistory(ctx context.Context, symbol string, start, end time.Time) ([]models.CompanyMetric, error)
	MarketTrends(ctx context.Context, days int) ([]models.MarketTrend, error)
	Ping(ctx context.Context) error
}

// Repository implements MetricsStore and QueryRepository on a pooled *sql.DB.
type Repository struct {
	db *sql.DB
}

var (
	_ MetricsStore    = (*Repository)(nil)
	_ QueryRepository = (*Repository)(nil)
)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Ping checks store connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return classify("ping", r.db.PingContext(ctx))
}
