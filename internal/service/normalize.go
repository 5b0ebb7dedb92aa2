package service

import (
	"database/sql"

	"github.com/guregu/null/v6"
	"github.com/guttosm/nsepulse/internal/domain/dto"
	"github.com/guttosm/nsepulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

// This file is the only place stored values become response values. NUMERIC
// columns are converted to float64 (precision beyond float64 is dropped) and
// SQL NULL stays JSON null.

func toFloat(d decimal.NullDecimal) null.Float {
	if !d.Valid {
		return null.Float{}
	}
	f, _ := d.Decimal.Float64()
	return null.FloatFrom(f)
}

func toInt(n sql.NullInt64) null.Int {
	return null.NewInt(n.Int64, n.Valid)
}

func companyMetricRow(m models.CompanyMetric) dto.CompanyMetricRow {
	return dto.CompanyMetricRow{
		Symbol:     m.Symbol,
		Date:       m.TradeDate.Format(models.DateLayout),
		Open:       toFloat(m.Open),
		Close:      toFloat(m.Close),
		High:       toFloat(m.High),
		Low:        toFloat(m.Low),
		Volume:     toInt(m.Volume),
		Returns:    toFloat(m.Returns),
		Volatility: toFloat(m.Volatility),
	}
}

func marketOverviewRow(o models.MarketOverview) dto.MarketOverviewRow {
	return dto.MarketOverviewRow{
		Date:        o.TradeDate.Format(models.DateLayout),
		TotalVolume: toInt(o.TotalVolume),
		Advancers:   toInt(o.Advancers),
		Decliners:   toInt(o.Decliners),
		Unchanged:   toInt(o.Unchanged),
		MarketCap:   toFloat(o.MarketCap),
	}
}

func trendPoint(t models.MarketTrend) dto.TrendPoint {
	return dto.TrendPoint{
		Date:          t.TradeDate.Format(models.DateLayout),
		Companies:     t.Companies,
		AvgClose:      toFloat(t.AvgClose),
		AvgReturns:    toFloat(t.AvgReturns),
		AvgVolatility: toFloat(t.AvgVolatility),
		TotalVolume:   toInt(t.TotalVolume),
	}
}

func rankedReturn(s models.Snapshot) dto.RankedReturn {
	return dto.RankedReturn{
		Symbol:      s.Symbol,
		Name:        s.Name,
		DailyReturn: toFloat(s.DailyReturn),
	}
}

func volatilityLeader(s models.Snapshot) dto.VolatilityLeader {
	return dto.VolatilityLeader{
		Symbol:        s.Symbol,
		Name:          s.Name,
		Volatility30d: toFloat(s.Volatility30d),
	}
}

func sectorPerformance(sector string, avg decimal.NullDecimal, companies int) dto.SectorPerformance {
	return dto.SectorPerformance{
		Sector:    sector,
		AvgReturn: toFloat(avg),
		Companies: companies,
	}
}
