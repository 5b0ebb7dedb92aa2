package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/nsepulse/internal/apperrors"
	"github.com/guttosm/nsepulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

type stubRepo struct {
	metric    *models.CompanyMetric
	overview  *models.MarketOverview
	snapshots []models.Snapshot
	history   []models.CompanyMetric
	trends    []models.MarketTrend
	err       error

	gotSymbol     string
	gotStart      time.Time
	gotEnd        time.Time
	gotDays       int
	sawDeadline   bool
	snapshotCalls int
}

func (s *stubRepo) CompanyMetric(ctx context.Context, symbol string, _ time.Time) (*models.CompanyMetric, error) {
	_, s.sawDeadline = ctx.Deadline()
	s.gotSymbol = symbol
	return s.metric, s.err
}
func (s *stubRepo) MarketOverview(context.Context, time.Time) (*models.MarketOverview, error) {
	return s.overview, s.err
}
func (s *stubRepo) Snapshots(context.Context, time.Time) ([]models.Snapshot, error) {
	s.snapshotCalls++
	return s.snapshots, s.err
}
func (s *stubRepo) CompanyHistory(_ context.Context, symbol string, start, end time.Time) ([]models.CompanyMetric, error) {
	s.gotSymbol, s.gotStart, s.gotEnd = symbol, start, end
	return s.history, s.err
}
func (s *stubRepo) MarketTrends(_ context.Context, days int) ([]models.MarketTrend, error) {
	s.gotDays = days
	return s.trends, s.err
}
func (s *stubRepo) Ping(context.Context) error { return s.err }

func dec(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func snap(id int64, symbol, sector, ret, vol string) models.Snapshot {
	return models.Snapshot{
		ID:            id,
		Symbol:        symbol,
		Name:          symbol + " Ltd",
		Sector:        sql.NullString{String: sector, Valid: sector != ""},
		DailyReturn:   dec(ret),
		Volatility30d: dec(vol),
	}
}

func newSvc(repo *stubRepo) QueryService {
	return NewQueryService(repo, DefaultQueryOptions(), nil)
}

func TestCompanyMetrics_NoDataShape(t *testing.T) {
	repo := &stubRepo{}
	resp, err := newSvc(repo).CompanyMetrics(context.Background(), "abc", "2099-01-01")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Symbol != "ABC" || resp.Date != "2099-01-01" || resp.Message != apperrors.NoDataMessage {
		t.Fatalf("unexpected resp %+v", resp)
	}
	if resp.Metrics == nil || len(resp.Metrics) != 0 {
		t.Fatalf("metrics must be an empty list, got %v", resp.Metrics)
	}
	if !repo.sawDeadline {
		t.Fatalf("store call should carry a deadline")
	}
}

func TestCompanyMetrics_NormalizesNumbers(t *testing.T) {
	repo := &stubRepo{metric: &models.CompanyMetric{
		Symbol:    "ABC",
		TradeDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Open:      dec("100"),
		Close:     dec("100"),
		High:      dec("115"),
		Low:       dec("85"),
		Volume:    sql.NullInt64{Int64: 1500, Valid: true},
		Returns:   dec("0"),
	}}
	resp, err := newSvc(repo).CompanyMetrics(context.Background(), "ABC", "2024-01-02")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Message != "" || len(resp.Metrics) != 1 {
		t.Fatalf("unexpected resp %+v", resp)
	}
	b, _ := json.Marshal(resp.Metrics[0])
	want := `{"symbol":"ABC","date":"2024-01-02","open":100,"close":100,"high":115,"low":85,"volume":1500,"returns":0,"volatility":null}`
	if string(b) != want {
		t.Fatalf("got %s\nwant %s", b, want)
	}
}

func TestCompanyMetrics_MalformedInput(t *testing.T) {
	cases := []struct{ symbol, date string }{
		{"ABC", "2024-13-01"},
		{"ABC", "yesterday"},
		{"AB C", "2024-01-02"},
		{"", "2024-01-02"},
	}
	for _, tc := range cases {
		repo := &stubRepo{}
		_, err := newSvc(repo).CompanyMetrics(context.Background(), tc.symbol, tc.date)
		if !apperrors.IsMalformed(err) {
			t.Fatalf("(%q,%q): want malformed error, got %v", tc.symbol, tc.date, err)
		}
		if repo.gotSymbol != "" {
			t.Fatalf("store must not be called for malformed input")
		}
	}
}

func TestMarketOverview(t *testing.T) {
	t.Run("no data", func(t *testing.T) {
		resp, err := newSvc(&stubRepo{}).MarketOverview(context.Background(), "2099-01-01")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if resp.Overview != nil || resp.Message != apperrors.NoDataMessage {
			t.Fatalf("unexpected resp %+v", resp)
		}
	})
	t.Run("found", func(t *testing.T) {
		repo := &stubRepo{overview: &models.MarketOverview{
			TradeDate:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			TotalVolume: sql.NullInt64{Int64: 1840, Valid: true},
			Advancers:   sql.NullInt64{Int64: 2, Valid: true},
			MarketCap:   dec("161450.5"),
		}}
		resp, err := newSvc(repo).MarketOverview(context.Background(), "2024-01-02")
		if err != nil || len(resp.Overview) != 1 {
			t.Fatalf("unexpected resp=%+v err=%v", resp, err)
		}
		row := resp.Overview[0]
		if row.MarketCap.Float64 != 161450.5 || row.TotalVolume.Int64 != 1840 || row.Decliners.Valid {
			t.Fatalf("unexpected row %+v", row)
		}
	})
}

func TestTopGainers_DeterministicTieBreak(t *testing.T) {
	repo := &stubRepo{snapshots: []models.Snapshot{
		snap(1, "AAA", "IT", "0.02", ""),
		snap(2, "BBB", "IT", "0.05", ""),
		snap(3, "CCC", "IT", "0.02", ""),
		snap(4, "DDD", "IT", "", ""),
		snap(5, "EEE", "IT", "0.02", ""),
		snap(6, "FFF", "IT", "-0.01", ""),
		snap(7, "GGG", "IT", "0.02", ""),
		snap(8, "HHH", "IT", "0.03", ""),
	}}
	svc := newSvc(repo)

	want := []string{"BBB", "HHH", "AAA", "CCC", "EEE"}
	for i := 0; i < 5; i++ {
		out, err := svc.TopGainers(context.Background(), "2024-01-02")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(out) != 5 {
			t.Fatalf("want 5 rows, got %d", len(out))
		}
		for j, r := range out {
			if r.Symbol != want[j] {
				t.Fatalf("call %d row %d: got %s want %s", i, j, r.Symbol, want[j])
			}
			if j > 0 && r.DailyReturn.Float64 > out[j-1].DailyReturn.Float64 {
				t.Fatalf("not descending at %d", j)
			}
		}
	}
}

func TestTopLosers_AscendingAndExcludesNull(t *testing.T) {
	repo := &stubRepo{snapshots: []models.Snapshot{
		snap(1, "AAA", "", "0.01", ""),
		snap(2, "BBB", "", "-0.04", ""),
		snap(3, "CCC", "", "", ""),
		snap(4, "DDD", "", "-0.04", ""),
	}}
	out, err := newSvc(repo).TopLosers(context.Background(), "2024-01-02")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := []string{}
	for _, r := range out {
		got = append(got, r.Symbol)
	}
	want := []string{"BBB", "DDD", "AAA"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestVolatilityLeaders(t *testing.T) {
	repo := &stubRepo{snapshots: []models.Snapshot{
		snap(1, "AAA", "", "", "0.10"),
		snap(2, "BBB", "", "", "0.40"),
		snap(3, "CCC", "", "", ""),
	}}
	out, err := newSvc(repo).VolatilityLeaders(context.Background(), "2024-01-02")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 || out[0].Symbol != "BBB" || out[0].Volatility30d.Float64 != 0.4 || out[0].Name != "BBB Ltd" {
		t.Fatalf("unexpected %+v", out)
	}
}

func TestLeaderboards_EmptyDateReturnsEmptyList(t *testing.T) {
	svc := newSvc(&stubRepo{snapshots: []models.Snapshot{}})
	gainers, err := svc.TopGainers(context.Background(), "2099-01-01")
	if err != nil || gainers == nil || len(gainers) != 0 {
		t.Fatalf("gainers=%v err=%v", gainers, err)
	}
	sectors, err := svc.SectorPerformance(context.Background(), "2099-01-01")
	if err != nil || sectors == nil || len(sectors) != 0 {
		t.Fatalf("sectors=%v err=%v", sectors, err)
	}
}

func TestSectorPerformance(t *testing.T) {
	repo := &stubRepo{snapshots: []models.Snapshot{
		snap(1, "AAA", "IT", "0.02", ""),
		snap(2, "BBB", "IT", "0.04", ""),
		snap(3, "CCC", "Energy", "0.05", ""),
		snap(4, "DDD", "", "-0.01", ""),
		snap(5, "EEE", "Banks", "", ""),
		snap(6, "FFF", "Auto", "0.03", ""),
	}}
	out, err := newSvc(repo).SectorPerformance(context.Background(), "2024-01-02")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []struct {
		sector    string
		avg       float64
		valid     bool
		companies int
	}{
		{"Energy", 0.05, true, 1},
		{"Auto", 0.03, true, 1},
		{"IT", 0.03, true, 2},
		{unclassifiedSector, -0.01, true, 1},
		{"Banks", 0, false, 1},
	}
	if len(out) != len(want) {
		t.Fatalf("got %d sectors want %d: %+v", len(out), len(want), out)
	}
	for i, w := range want {
		got := out[i]
		if got.Sector != w.sector || got.AvgReturn.Valid != w.valid || got.Companies != w.companies {
			t.Fatalf("row %d: got %+v want %+v", i, got, w)
		}
		if w.valid && got.AvgReturn.Float64 != w.avg {
			t.Fatalf("row %d avg: got %v want %v", i, got.AvgReturn.Float64, w.avg)
		}
	}
}

func TestCompanyHistory(t *testing.T) {
	t.Run("inclusive bounds are passed through", func(t *testing.T) {
		d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		d3 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
		repo := &stubRepo{history: []models.CompanyMetric{
			{Symbol: "ABC", TradeDate: d1, Close: dec("1")},
			{Symbol: "ABC", TradeDate: d3, Close: dec("3")},
		}}
		out, err := newSvc(repo).CompanyHistory(context.Background(), "ABC", "2024-01-01", "2024-01-03")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !repo.gotStart.Equal(d1) || !repo.gotEnd.Equal(d3) || repo.gotSymbol != "ABC" {
			t.Fatalf("bounds not forwarded: %v %v %s", repo.gotStart, repo.gotEnd, repo.gotSymbol)
		}
		if len(out) != 2 || out[0].Date != "2024-01-01" || out[1].Date != "2024-01-03" {
			t.Fatalf("unexpected %+v", out)
		}
	})
	t.Run("unknown symbol is empty", func(t *testing.T) {
		out, err := newSvc(&stubRepo{}).CompanyHistory(context.Background(), "NOPE", "2024-01-01", "2024-01-03")
		if err != nil || out == nil || len(out) != 0 {
			t.Fatalf("out=%v err=%v", out, err)
		}
	})
	t.Run("start after end", func(t *testing.T) {
		_, err := newSvc(&stubRepo{}).CompanyHistory(context.Background(), "ABC", "2024-01-05", "2024-01-03")
		if !apperrors.IsMalformed(err) {
			t.Fatalf("want malformed, got %v", err)
		}
	})
	t.Run("missing end", func(t *testing.T) {
		_, err := newSvc(&stubRepo{}).CompanyHistory(context.Background(), "ABC", "2024-01-01", "")
		if !apperrors.IsMalformed(err) {
			t.Fatalf("want malformed, got %v", err)
		}
	})
}

func TestMarketTrends_Period(t *testing.T) {
	cases := []struct {
		period    string
		wantDays  int
		malformed bool
	}{
		{"", 30, false},
		{"7", 7, false},
		{"365", 365, false},
		{"0", 0, true},
		{"366", 0, true},
		{"-3", 0, true},
		{"week", 0, true},
	}
	for _, tc := range cases {
		repo := &stubRepo{trends: []models.MarketTrend{}}
		out, err := newSvc(repo).MarketTrends(context.Background(), tc.period)
		if tc.malformed {
			if !apperrors.IsMalformed(err) {
				t.Fatalf("period %q: want malformed, got %v", tc.period, err)
			}
			continue
		}
		if err != nil || out == nil || repo.gotDays != tc.wantDays {
			t.Fatalf("period %q: out=%v err=%v days=%d", tc.period, out, err, repo.gotDays)
		}
	}
}

func TestMarketTrends_Normalizes(t *testing.T) {
	repo := &stubRepo{trends: []models.MarketTrend{
		{TradeDate: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Companies: 2, AvgClose: dec("10.5"), TotalVolume: sql.NullInt64{Int64: 30, Valid: true}},
		{TradeDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Companies: 1},
	}}
	out, err := newSvc(repo).MarketTrends(context.Background(), "")
	if err != nil || len(out) != 2 {
		t.Fatalf("out=%v err=%v", out, err)
	}
	if out[0].Date != "2024-01-03" || out[0].AvgClose.Float64 != 10.5 || out[1].AvgClose.Valid {
		t.Fatalf("unexpected %+v", out)
	}
}

func TestStoreErrorsPropagate(t *testing.T) {
	transient := apperrors.NewTransient("list snapshots", context.DeadlineExceeded)
	svc := newSvc(&stubRepo{err: transient})

	if _, err := svc.TopGainers(context.Background(), "2024-01-02"); !apperrors.IsTransient(err) {
		t.Fatalf("want transient, got %v", err)
	}
	if _, err := svc.MarketOverview(context.Background(), "2024-01-02"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("cause should be reachable, got %v", err)
	}
}

func TestNewQueryService_Defaults(t *testing.T) {
	svc := NewQueryService(&stubRepo{}, QueryOptions{}, nil).(*queryService)
	if svc.opts != DefaultQueryOptions() {
		t.Fatalf("zero options should fall back to defaults, got %+v", svc.opts)
	}
}
