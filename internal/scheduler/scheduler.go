// Package scheduler triggers daily materialization and serves manual replays.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/guttosm/nsepulse/internal/apperrors"
	"github.com/guttosm/nsepulse/internal/domain/models"
	"github.com/guttosm/nsepulse/internal/logger"
	"github.com/guttosm/nsepulse/internal/metrics"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Materializer is the aggregator operation the scheduler drives.
type Materializer interface {
	Materialize(ctx context.Context, tradeDate time.Time) (models.MaterializationResult, error)
}

// Config controls when and how the daily job runs.
type Config struct {
	// Spec is a standard five-field cron expression evaluated in Location.
	Spec string
	// Location is the timezone of Spec and of "today". Nil means time.Local.
	Location *time.Location
	// LagDays is subtracted from today to get the target trade date.
	LagDays int
	// SkipNonTradingDays skips scheduled ticks whose target date the calendar marks closed.
	SkipNonTradingDays bool
	// MaxRetries bounds retries of transient failures within one run.
	MaxRetries uint64
	// ReplayParallelism bounds concurrent dates in Replay. Values below 1 mean 1.
	ReplayParallelism int
}

// DefaultConfig runs at local midnight for the current date.
func DefaultConfig() Config {
	return Config{
		Spec:              "0 0 * * *",
		Location:          time.Local,
		MaxRetries:        3,
		ReplayParallelism: 1,
	}
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithBackOff replaces the retry policy used for transient failures.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(s *Scheduler) { s.newBackOff = newBackOff }
}

// WithCalendar sets the trading calendar consulted by scheduled ticks.
func WithCalendar(cal TradingCalendar) Option {
	return func(s *Scheduler) { s.calendar = cal }
}

// WithMetrics records run outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// Scheduler owns the cron instance and the per-date in-flight guard.
type Scheduler struct {
	cfg        Config
	mat        Materializer
	cron       *cron.Cron
	calendar   TradingCalendar
	metrics    *metrics.Metrics
	now        func() time.Time
	newBackOff func() backoff.BackOff
	log        zerolog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}

	// base is the parent context of cron-triggered ticks; Stop cancels it.
	base   context.Context
	cancel context.CancelFunc
}

// New builds a stopped Scheduler and registers the daily job.
func New(mat Materializer, cfg Config, opts ...Option) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.ReplayParallelism < 1 {
		cfg.ReplayParallelism = 1
	}

	s := &Scheduler{
		cfg:      cfg,
		mat:      mat,
		calendar: WeekdayCalendar{},
		now:      time.Now,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 2 * time.Second
			b.MaxInterval = 30 * time.Second
			b.MaxElapsedTime = 5 * time.Minute
			return b
		},
		log:      logger.Component("scheduler"),
		inFlight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.base, s.cancel = context.WithCancel(context.Background())

	cl := cronLogger{log: s.log}
	s.cron = cron.New(
		cron.WithLocation(cfg.Location),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := s.cron.AddFunc(cfg.Spec, func() { _, _ = s.Tick(s.base) }); err != nil {
		return nil, fmt.Errorf("register materialization job %q: %w", cfg.Spec, err)
	}
	return s, nil
}

// Start begins firing the daily job in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Str("spec", s.cfg.Spec).Str("location", s.cfg.Location.String()).Msg("scheduler started")
}

// Stop halts the cron and waits for a running job. If ctx expires first, the
// running job's context is cancelled, which rolls back its transaction.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	defer s.cancel()
	select {
	case <-done.Done():
		s.log.Info().Msg("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler stop timed out, cancelling running job")
		return ctx.Err()
	}
}

// TargetDate is today in the configured location minus the lag.
func (s *Scheduler) TargetDate() time.Time {
	return models.TruncateToDate(s.now().In(s.cfg.Location)).AddDate(0, 0, -s.cfg.LagDays)
}

// Tick is the scheduled job. Non-trading days are skipped when configured; the
// zero result with a nil error means nothing ran.
func (s *Scheduler) Tick(ctx context.Context) (models.MaterializationResult, error) {
	date := s.TargetDate()
	if s.cfg.SkipNonTradingDays && !s.calendar.IsTradingDay(date) {
		s.metrics.ObserveMaterialization(metrics.OutcomeSkipped, 0)
		s.log.Info().Str("trade_date", date.Format(models.DateLayout)).Msg("non-trading day, skipping materialization")
		return models.MaterializationResult{}, nil
	}

	res, err := s.RunFor(ctx, date)
	if err != nil {
		s.log.Error().Err(err).Str("trade_date", date.Format(models.DateLayout)).Msg("scheduled materialization failed")
	}
	return res, err
}

// RunFor materializes one date, retrying transient failures with backoff.
// It returns apperrors.ErrMaterializationInProgress if the date is already running
// in this process.
func (s *Scheduler) RunFor(ctx context.Context, date time.Time) (models.MaterializationResult, error) {
	date = models.TruncateToDate(date)
	if !s.acquire(date) {
		s.metrics.ObserveMaterialization(metrics.OutcomeInProgress, 0)
		s.log.Warn().Str("trade_date", date.Format(models.DateLayout)).Msg("materialization already running, skipping")
		return models.MaterializationResult{TradeDate: date}, apperrors.ErrMaterializationInProgress
	}
	defer s.release(date)

	var res models.MaterializationResult
	op := func() error {
		r, err := s.mat.Materialize(ctx, date)
		if err != nil {
			if apperrors.IsTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		res = r
		return nil
	}
	notify := func(err error, wait time.Duration) {
		s.log.Warn().Err(err).Str("trade_date", date.Format(models.DateLayout)).Dur("retry_in", wait).Msg("transient failure, retrying")
	}

	b := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.cfg.MaxRetries), ctx)
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return models.MaterializationResult{TradeDate: date}, err
	}
	return res, nil
}

// ReplayResult is the outcome of one replayed date.
type ReplayResult struct {
	Date   time.Time
	Result models.MaterializationResult
	Err    error
}

// Replay materializes the given dates with bounded parallelism. Each date is its
// own atomic unit; a failing date does not stop the others. Dates not yet
// started when ctx is cancelled are reported with ctx.Err(). The returned error
// joins every per-date failure.
func (s *Scheduler) Replay(ctx context.Context, dates ...time.Time) ([]ReplayResult, error) {
	out := make([]ReplayResult, len(dates))
	var g errgroup.Group
	g.SetLimit(s.cfg.ReplayParallelism)

	for i, d := range dates {
		out[i].Date = models.TruncateToDate(d)
		if err := ctx.Err(); err != nil {
			out[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			out[i].Result, out[i].Err = s.RunFor(ctx, out[i].Date)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, r := range out {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Date.Format(models.DateLayout), r.Err))
		}
	}
	return out, errors.Join(errs...)
}

func (s *Scheduler) acquire(date time.Time) bool {
	key := date.Format(models.DateLayout)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[key]; busy {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *Scheduler) release(date time.Time) {
	s.mu.Lock()
	delete(s.inFlight, date.Format(models.DateLayout))
	s.mu.Unlock()
}
