package dto

import "github.com/guregu/null/v6"

// CompanyMetricRow is one derived company metric. Numbers are JSON numbers;
// values the aggregator could not define (e.g. volatility of a single row) are null.
type CompanyMetricRow struct {
	Symbol     string     `json:"symbol" example:"RELIANCE"`
	Date       string     `json:"date" example:"2024-01-02"`
	Open       null.Float `json:"open" swaggertype:"number" example:"2580.5"`
	Close      null.Float `json:"close" swaggertype:"number" example:"2601.25"`
	High       null.Float `json:"high" swaggertype:"number" example:"2610"`
	Low        null.Float `json:"low" swaggertype:"number" example:"2570.1"`
	Volume     null.Int   `json:"volume" swaggertype:"integer" example:"5423001"`
	Returns    null.Float `json:"returns" swaggertype:"number" example:"0.00804107"`
	Volatility null.Float `json:"volatility" swaggertype:"number" example:"14.14213562"`
}

// CompanyMetricsResponse answers GET /api/company/{symbol}/metrics/{date}.
// Metrics is empty and Message set when nothing is materialized for the key.
type CompanyMetricsResponse struct {
	Symbol  string             `json:"symbol" example:"RELIANCE"`
	Date    string             `json:"date" example:"2024-01-02"`
	Metrics []CompanyMetricRow `json:"metrics"`
	Message string             `json:"message,omitempty" example:"No data available"`
}

// MarketOverviewRow is the market-wide aggregate of one trade date.
type MarketOverviewRow struct {
	Date        string     `json:"date" example:"2024-01-02"`
	TotalVolume null.Int   `json:"total_volume" swaggertype:"integer" example:"1840"`
	Advancers   null.Int   `json:"advancers" swaggertype:"integer" example:"2"`
	Decliners   null.Int   `json:"decliners" swaggertype:"integer" example:"1"`
	Unchanged   null.Int   `json:"unchanged" swaggertype:"integer" example:"1"`
	MarketCap   null.Float `json:"market_cap" swaggertype:"number" example:"161450"`
}

// MarketOverviewResponse answers GET /api/market/overview/{date}.
// Overview is null and Message set when the date has no aggregate.
type MarketOverviewResponse struct {
	Date     string              `json:"date" example:"2024-01-02"`
	Overview []MarketOverviewRow `json:"overview"`
	Message  string              `json:"message,omitempty" example:"No data available"`
}

// TrendPoint averages the company metrics of one trade date.
type TrendPoint struct {
	Date          string     `json:"date" example:"2024-01-02"`
	Companies     int64      `json:"companies" example:"1850"`
	AvgClose      null.Float `json:"avg_close" swaggertype:"number" example:"812.4"`
	AvgReturns    null.Float `json:"avg_returns" swaggertype:"number" example:"0.0031"`
	AvgVolatility null.Float `json:"avg_volatility" swaggertype:"number" example:"4.2"`
	TotalVolume   null.Int   `json:"total_volume" swaggertype:"integer" example:"912004551"`
}
