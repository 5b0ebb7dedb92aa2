package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/guttosm/nsepulse/internal/apperrors"
	"github.com/guttosm/nsepulse/internal/domain/dto"
	"github.com/guttosm/nsepulse/internal/domain/models"
	"github.com/guttosm/nsepulse/internal/metrics"
	"github.com/guttosm/nsepulse/internal/storage"
)

// QueryService defines the read-only projections over materialized data.
//
// A valid key without data is never an error: single-key lookups return an
// empty shape carrying apperrors.NoDataMessage and list lookups return an empty
// slice. Errors are *apperrors.MalformedInputError for bad input and
// *apperrors.TransientStoreError when the store is unreachable or slow.
type QueryService interface {
	CompanyMetrics(ctx context.Context, symbol, date string) (*dto.CompanyMetricsResponse, error)
	MarketOverview(ctx context.Context, date string) (*dto.MarketOverviewResponse, error)
	TopGainers(ctx context.Context, date string) ([]dto.RankedReturn, error)
	TopLosers(ctx context.Context, date string) ([]dto.RankedReturn, error)
	VolatilityLeaders(ctx context.Context, date string) ([]dto.VolatilityLeader, error)
	SectorPerformance(ctx context.Context, date string) ([]dto.SectorPerformance, error)
	CompanyHistory(ctx context.Context, symbol, start, end string) ([]dto.CompanyMetricRow, error)
	MarketTrends(ctx context.Context, period string) ([]dto.TrendPoint, error)
}

// QueryOptions tunes the query layer.
type QueryOptions struct {
	Timeout          time.Duration // per-operation store deadline
	LeaderboardSize  int           // rows per leaderboard
	DefaultTrendDays int           // period used when none is given
	MaxTrendDays     int           // largest accepted period
}

// DefaultQueryOptions mirrors the config defaults.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Timeout:          5 * time.Second,
		LeaderboardSize:  5,
		DefaultTrendDays: 30,
		MaxTrendDays:     365,
	}
}

type queryService struct {
	repo    storage.QueryRepository
	opts    QueryOptions
	metrics *metrics.Metrics
}

// NewQueryService wires a QueryService on top of repo. m may be nil.
func NewQueryService(repo storage.QueryRepository, opts QueryOptions, m *metrics.Metrics) QueryService {
	def := DefaultQueryOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.LeaderboardSize <= 0 {
		opts.LeaderboardSize = def.LeaderboardSize
	}
	if opts.DefaultTrendDays <= 0 {
		opts.DefaultTrendDays = def.DefaultTrendDays
	}
	if opts.MaxTrendDays < opts.DefaultTrendDays {
		opts.MaxTrendDays = max(def.MaxTrendDays, opts.DefaultTrendDays)
	}
	return &queryService{repo: repo, opts: opts, metrics: m}
}

func (s *queryService) CompanyMetrics(ctx context.Context, symbol, date string) (*dto.CompanyMetricsResponse, error) {
	const op = "company_metrics"
	sym, err := models.ParseSymbol(symbol)
	if err != nil {
		return nil, s.fail(op, err)
	}
	d, err := models.ParseTradeDate("date", date)
	if err != nil {
		return nil, s.fail(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	m, err := s.repo.CompanyMetric(ctx, sym, d)
	if err != nil {
		return nil, s.fail(op, err)
	}

	resp := &dto.CompanyMetricsResponse{
		Symbol:  sym,
		Date:    d.Format(models.DateLayout),
		Metrics: []dto.CompanyMetricRow{},
	}
	if m == nil {
		resp.Message = apperrors.NoDataMessage
		return resp, nil
	}
	resp.Metrics = append(resp.Metrics, companyMetricRow(*m))
	return resp, nil
}

func (s *queryService) MarketOverview(ctx context.Context, date string) (*dto.MarketOverviewResponse, error) {
	const op = "market_overview"
	d, err := models.ParseTradeDate("date", date)
	if err != nil {
		return nil, s.fail(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	o, err := s.repo.MarketOverview(ctx, d)
	if err != nil {
		return nil, s.fail(op, err)
	}

	resp := &dto.MarketOverviewResponse{Date: d.Format(models.DateLayout)}
	if o == nil {
		resp.Message = apperrors.NoDataMessage
		return resp, nil
	}
	resp.Overview = []dto.MarketOverviewRow{marketOverviewRow(*o)}
	return resp, nil
}

func (s *queryService) TopGainers(ctx context.Context, date string) ([]dto.RankedReturn, error) {
	return s.rankedReturns(ctx, "top_gainers", date, true)
}

func (s *queryService) TopLosers(ctx context.Context, date string) ([]dto.RankedReturn, error) {
	return s.rankedReturns(ctx, "top_losers", date, false)
}

func (s *queryService) rankedReturns(ctx context.Context, op, date string, desc bool) ([]dto.RankedReturn, error) {
	snaps, err := s.snapshots(ctx, op, date)
	if err != nil {
		return nil, err
	}
	ranked := rankSnapshots(snaps, dailyReturn, desc, s.opts.LeaderboardSize)
	out := make([]dto.RankedReturn, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, rankedReturn(r))
	}
	return out, nil
}

func (s *queryService) VolatilityLeaders(ctx context.Context, date string) ([]dto.VolatilityLeader, error) {
	snaps, err := s.snapshots(ctx, "volatility_leaders", date)
	if err != nil {
		return nil, err
	}
	ranked := rankSnapshots(snaps, volatility30d, true, s.opts.LeaderboardSize)
	out := make([]dto.VolatilityLeader, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, volatilityLeader(r))
	}
	return out, nil
}

func (s *queryService) SectorPerformance(ctx context.Context, date string) ([]dto.SectorPerformance, error) {
	snaps, err := s.snapshots(ctx, "sector_performance", date)
	if err != nil {
		return nil, err
	}
	sectors := averageBySector(snaps)
	out := make([]dto.SectorPerformance, 0, len(sectors))
	for _, sa := range sectors {
		out = append(out, sectorPerformance(sa.sector, sa.avg, sa.companies))
	}
	return out, nil
}

func (s *queryService) snapshots(ctx context.Context, op, date string) ([]models.Snapshot, error) {
	d, err := models.ParseTradeDate("date", date)
	if err != nil {
		return nil, s.fail(op, err)
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	snaps, err := s.repo.Snapshots(ctx, d)
	if err != nil {
		return nil, s.fail(op, err)
	}
	return snaps, nil
}

func (s *queryService) CompanyHistory(ctx context.Context, symbol, start, end string) ([]dto.CompanyMetricRow, error) {
	const op = "company_history"
	sym, err := models.ParseSymbol(symbol)
	if err != nil {
		return nil, s.fail(op, err)
	}
	from, err := models.ParseTradeDate("start", start)
	if err != nil {
		return nil, s.fail(op, err)
	}
	to, err := models.ParseTradeDate("end", end)
	if err != nil {
		return nil, s.fail(op, err)
	}
	if from.After(to) {
		return nil, s.fail(op, apperrors.Malformed("start", start, "must not be after end "+to.Format(models.DateLayout)))
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	rows, err := s.repo.CompanyHistory(ctx, sym, from, to)
	if err != nil {
		return nil, s.fail(op, err)
	}
	out := make([]dto.CompanyMetricRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, companyMetricRow(r))
	}
	return out, nil
}

// MarketTrends accepts an empty period (the default window) or a whole number of
// calendar days between 1 and the configured maximum.
func (s *queryService) MarketTrends(ctx context.Context, period string) ([]dto.TrendPoint, error) {
	const op = "market_trends"
	days, err := s.parsePeriod(period)
	if err != nil {
		return nil, s.fail(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	trends, err := s.repo.MarketTrends(ctx, days)
	if err != nil {
		return nil, s.fail(op, err)
	}
	out := make([]dto.TrendPoint, 0, len(trends))
	for _, t := range trends {
		out = append(out, trendPoint(t))
	}
	return out, nil
}

func (s *queryService) parsePeriod(period string) (int, error) {
	if period == "" {
		return s.opts.DefaultTrendDays, nil
	}
	days, err := strconv.Atoi(period)
	if err != nil {
		return 0, apperrors.Malformed("period", period, "expected a whole number of days")
	}
	if days < 1 || days > s.opts.MaxTrendDays {
		return 0, apperrors.Malformed("period", period, fmt.Sprintf("must be between 1 and %d", s.opts.MaxTrendDays))
	}
	return days, nil
}

// fail counts the failure by kind and returns err unchanged.
func (s *queryService) fail(op string, err error) error {
	kind := "internal"
	switch {
	case apperrors.IsMalformed(err):
		kind = "malformed"
	case apperrors.IsTransient(err):
		kind = "transient"
	}
	s.metrics.QueryFailed(op, kind)
	return err
}
