package aggregator

import (
	"testing"
	"time"

	"github.com/guttosm/nsepulse/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func fact(companyID int64, symbol string, open, close, high, low float64, volume int64) models.PriceFact {
	return models.PriceFact{
		CompanyID: companyID,
		Symbol:    symbol,
		TradeDate: day,
		Open:      decimal.NewFromFloat(open),
		Close:     decimal.NewFromFloat(close),
		High:      decimal.NewFromFloat(high),
		Low:       decimal.NewFromFloat(low),
		Volume:    volume,
	}
}

func TestComputeCompanyMetrics_TwoListingsOneSymbol(t *testing.T) {
	facts := []models.PriceFact{
		fact(1, "ABC", 100, 110, 112, 98, 1000),
		fact(2, "ABC", 100, 90, 101, 88, 500),
	}

	got := ComputeCompanyMetrics(day, facts)
	require.Len(t, got, 1)
	m := got[0]

	assert.Equal(t, "ABC", m.Symbol)
	assert.True(t, m.TradeDate.Equal(day))
	assert.Equal(t, "100", m.Open.Decimal.String())
	assert.Equal(t, "100", m.Close.Decimal.String())
	assert.Equal(t, "112", m.High.Decimal.String())
	assert.Equal(t, "88", m.Low.Decimal.String())
	assert.Equal(t, int64(1500), m.Volume.Int64)

	require.True(t, m.Returns.Valid)
	assert.True(t, m.Returns.Decimal.IsZero())

	require.True(t, m.Volatility.Valid)
	assert.InDelta(t, 14.1421356, m.Volatility.Decimal.InexactFloat64(), 1e-6)
}

func TestComputeCompanyMetrics_SingleRowHasNullVolatility(t *testing.T) {
	got := ComputeCompanyMetrics(day, []models.PriceFact{fact(1, "XYZ", 50, 55, 56, 49, 10)})
	require.Len(t, got, 1)

	assert.False(t, got[0].Volatility.Valid, "sample stddev of one value is undefined")
	require.True(t, got[0].Returns.Valid)
	assert.Equal(t, "0.1", got[0].Returns.Decimal.String())
}

func TestComputeCompanyMetrics_ZeroOpenHasNullReturns(t *testing.T) {
	got := ComputeCompanyMetrics(day, []models.PriceFact{
		fact(1, "ZRO", 0, 5, 5, 0, 10),
		fact(2, "ZRO", 0, 7, 7, 0, 10),
	})
	require.Len(t, got, 1)

	assert.False(t, got[0].Returns.Valid)
	assert.True(t, got[0].Volatility.Valid)
}

func TestComputeCompanyMetrics_OrderedBySymbol(t *testing.T) {
	got := ComputeCompanyMetrics(day, []models.PriceFact{
		fact(3, "TCS", 1, 1, 1, 1, 1),
		fact(1, "INFY", 1, 1, 1, 1, 1),
		fact(2, "RELIANCE", 1, 1, 1, 1, 1),
	})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"INFY", "RELIANCE", "TCS"}, []string{got[0].Symbol, got[1].Symbol, got[2].Symbol})
}

func TestComputeCompanyMetrics_Empty(t *testing.T) {
	assert.Empty(t, ComputeCompanyMetrics(day, nil))
}

func TestComputeMarketOverview(t *testing.T) {
	facts := []models.PriceFact{
		fact(1, "ABC", 100, 110, 112, 98, 1000),
		fact(2, "ABC", 100, 90, 101, 88, 500),
		fact(3, "DEF", 20, 20, 21, 19, 300),
		fact(4, "GHI", 10.5, 11.25, 12, 10, 40),
	}

	o := ComputeMarketOverview(day, facts)
	require.NotNil(t, o)

	assert.Equal(t, int64(1840), o.TotalVolume.Int64)
	assert.Equal(t, int64(2), o.Advancers.Int64)
	assert.Equal(t, int64(1), o.Decliners.Int64)
	assert.Equal(t, int64(1), o.Unchanged.Int64)
	assert.Equal(t, int64(len(facts)), o.Advancers.Int64+o.Decliners.Int64+o.Unchanged.Int64)
	// 110*1000 + 90*500 + 20*300 + 11.25*40
	assert.Equal(t, "161450", o.MarketCap.Decimal.String())
}

func TestComputeMarketOverview_NoFacts(t *testing.T) {
	assert.Nil(t, ComputeMarketOverview(day, nil))
}

func TestSampleStdDev(t *testing.T) {
	_, ok := sampleStdDev(nil)
	assert.False(t, ok)
	_, ok = sampleStdDev([]float64{3})
	assert.False(t, ok)

	sd, ok := sampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.True(t, ok)
	assert.InDelta(t, 2.13808993, sd, 1e-8)
}
