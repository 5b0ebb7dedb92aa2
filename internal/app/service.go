package app

import (
	"database/sql"
	"fmt"

	"github.com/guttosm/nsepulse/config"
	"github.com/guttosm/nsepulse/internal/aggregator"
	"github.com/guttosm/nsepulse/internal/metrics"
	"github.com/guttosm/nsepulse/internal/scheduler"
	"github.com/guttosm/nsepulse/internal/service"
	"github.com/guttosm/nsepulse/internal/storage"
)

// Services groups the domain components built on one database pool.
// The HTTP server and the materialize command share it.
type Services struct {
	Repo      *storage.Repository
	Metrics   *metrics.Metrics
	Query     service.QueryService
	Scheduler *scheduler.Scheduler
}

// BuildServices wires storage, the aggregator, the scheduler and the query layer.
// The scheduler is returned stopped.
func BuildServices(db *sql.DB, cfg config.Config) (*Services, error) {
	repo := storage.NewRepository(db)
	m := metrics.New()

	schedCfg, err := schedulerConfig(cfg.Scheduler)
	if err != nil {
		return nil, err
	}
	sched, err := scheduler.New(
		aggregator.NewMaterializer(repo, m),
		schedCfg,
		scheduler.WithMetrics(m),
		scheduler.WithCalendar(scheduler.NewTradingCalendar(cfg.Scheduler.CalendarMIC)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build scheduler: %w", err)
	}

	query := service.NewQueryService(repo, service.QueryOptions{
		Timeout:          cfg.Query.Timeout,
		LeaderboardSize:  cfg.Query.LeaderboardSize,
		DefaultTrendDays: cfg.Query.DefaultTrendDays,
		MaxTrendDays:     cfg.Query.MaxTrendDays,
	}, m)

	return &Services{Repo: repo, Metrics: m, Query: query, Scheduler: sched}, nil
}

// schedulerConfig maps SCHEDULER_* settings onto scheduler.Config, falling back
// to scheduler.DefaultConfig for unset values.
func schedulerConfig(c config.SchedulerConfig) (scheduler.Config, error) {
	out := scheduler.DefaultConfig()
	if c.Cron != "" {
		out.Spec = c.Cron
	}
	loc, err := c.Location()
	if err != nil {
		return out, fmt.Errorf("invalid scheduler timezone %q: %w", c.Timezone, err)
	}
	out.Location = loc
	out.LagDays = c.LagDays
	out.SkipNonTradingDays = c.SkipNonTradingDays
	if c.MaxRetries > 0 {
		out.MaxRetries = uint64(c.MaxRetries)
	}
	if c.ReplayParallelism > 0 {
		out.ReplayParallelism = c.ReplayParallelism
	}
	return out, nil
}
