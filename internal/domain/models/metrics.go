package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// CompanyMetric is the derived per-symbol row stored in company_metrics.
// Unique by (Symbol, TradeDate); inserted once and never updated.
type CompanyMetric struct {
	Symbol     string
	TradeDate  time.Time
	Open       decimal.NullDecimal
	Close      decimal.NullDecimal
	High       decimal.NullDecimal
	Low        decimal.NullDecimal
	Volume     sql.NullInt64
	Returns    decimal.NullDecimal // null when the average open is zero
	Volatility decimal.NullDecimal // null for groups with fewer than two rows
}

// MarketOverview is the derived market-wide row stored in market_overview.
// Unique by TradeDate; inserted once and never updated.
type MarketOverview struct {
	TradeDate   time.Time
	TotalVolume sql.NullInt64
	Advancers   sql.NullInt64
	Decliners   sql.NullInt64
	Unchanged   sql.NullInt64
	MarketCap   decimal.NullDecimal
}

// MarketTrend averages company metrics across all symbols of one trade date.
type MarketTrend struct {
	TradeDate     time.Time
	Companies     int64
	AvgClose      decimal.NullDecimal
	AvgReturns    decimal.NullDecimal
	AvgVolatility decimal.NullDecimal
	TotalVolume   sql.NullInt64
}

// MaterializationResult summarizes one materialization pass for a trade date.
type MaterializationResult struct {
	TradeDate             time.Time
	FactsRead             int
	CompanyMetricsWritten int
	CompanyMetricsSkipped int // rows already present for the key
	OverviewWritten       bool
	Duration              time.Duration
}
