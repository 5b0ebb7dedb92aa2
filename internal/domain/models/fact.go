package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// PriceFact is one raw daily observation for a company listing.
// Rows are written by the external ingestion process and never change.
//
// Symbol is resolved from the company dimension; several listings
// (company ids) may share one symbol, e.g. the EQ and BE series.
type PriceFact struct {
	CompanyID int64
	Symbol    string
	TradeDate time.Time
	Open      decimal.Decimal
	Close     decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Volume    int64
}

// Snapshot is the richer per-company daily fact the leaderboards rank over.
//
// ID is the surrogate key assigned on insert; ordering by it yields insertion order.
type Snapshot struct {
	ID            int64
	Symbol        string
	Name          string
	Sector        sql.NullString
	DailyReturn   decimal.NullDecimal
	Volatility30d decimal.NullDecimal
}
