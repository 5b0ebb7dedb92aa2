package aggregator

import (
	"database/sql"
	"math"
	"sort"
	"time"

	"github.com/guttosm/nsepulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

// ratioPlaces bounds the scale of averages, returns and volatility written to NUMERIC columns.
const ratioPlaces = 8

// ComputeCompanyMetrics groups the facts of one trade date by symbol and derives
// one CompanyMetric per group, ordered by symbol.
//
// Per group:
//   - open/close: mean across rows
//   - high/low: max/min across rows
//   - volume: sum
//   - returns: (avg_close - avg_open) / avg_open, null when avg_open is zero
//   - volatility: sample standard deviation of close, null below two rows
func ComputeCompanyMetrics(tradeDate time.Time, facts []models.PriceFact) []models.CompanyMetric {
	groups := make(map[string][]models.PriceFact)
	for _, f := range facts {
		groups[f.Symbol] = append(groups[f.Symbol], f)
	}

	symbols := make([]string, 0, len(groups))
	for s := range groups {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	out := make([]models.CompanyMetric, 0, len(symbols))
	for _, symbol := range symbols {
		out = append(out, computeGroup(symbol, tradeDate, groups[symbol]))
	}
	return out
}

func computeGroup(symbol string, tradeDate time.Time, rows []models.PriceFact) models.CompanyMetric {
	n := decimal.NewFromInt(int64(len(rows)))
	sumOpen, sumClose := decimal.Zero, decimal.Zero
	high, low := rows[0].High, rows[0].Low
	var volume int64
	closes := make([]float64, 0, len(rows))

	for _, r := range rows {
		sumOpen = sumOpen.Add(r.Open)
		sumClose = sumClose.Add(r.Close)
		if r.High.GreaterThan(high) {
			high = r.High
		}
		if r.Low.LessThan(low) {
			low = r.Low
		}
		volume += r.Volume
		closes = append(closes, r.Close.InexactFloat64())
	}

	avgOpen := sumOpen.DivRound(n, ratioPlaces)
	avgClose := sumClose.DivRound(n, ratioPlaces)

	m := models.CompanyMetric{
		Symbol:    symbol,
		TradeDate: tradeDate,
		Open:      valid(avgOpen),
		Close:     valid(avgClose),
		High:      valid(high),
		Low:       valid(low),
		Volume:    sql.NullInt64{Int64: volume, Valid: true},
	}
	if !avgOpen.IsZero() {
		m.Returns = valid(avgClose.Sub(avgOpen).DivRound(avgOpen, ratioPlaces))
	}
	if sd, ok := sampleStdDev(closes); ok {
		m.Volatility = valid(decimal.NewFromFloat(sd).Round(ratioPlaces))
	}
	return m
}

// ComputeMarketOverview derives the market-wide row for one trade date.
// It returns nil when there are no facts, so nothing is written for empty dates.
//
// Advancers, decliners and unchanged partition every fact by the sign of close - open.
func ComputeMarketOverview(tradeDate time.Time, facts []models.PriceFact) *models.MarketOverview {
	if len(facts) == 0 {
		return nil
	}

	var totalVolume, advancers, decliners, unchanged int64
	marketCap := decimal.Zero
	for _, f := range facts {
		totalVolume += f.Volume
		marketCap = marketCap.Add(f.Close.Mul(decimal.NewFromInt(f.Volume)))
		switch f.Close.Cmp(f.Open) {
		case 1:
			advancers++
		case -1:
			decliners++
		default:
			unchanged++
		}
	}

	return &models.MarketOverview{
		TradeDate:   tradeDate,
		TotalVolume: sql.NullInt64{Int64: totalVolume, Valid: true},
		Advancers:   sql.NullInt64{Int64: advancers, Valid: true},
		Decliners:   sql.NullInt64{Int64: decliners, Valid: true},
		Unchanged:   sql.NullInt64{Int64: unchanged, Valid: true},
		MarketCap:   valid(marketCap),
	}
}

// sampleStdDev uses the n-1 denominator; it is undefined for fewer than two values.
func sampleStdDev(xs []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	ss := 0.0
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)-1)), true
}

func valid(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
