package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/nsepulse/config"
	"github.com/guttosm/nsepulse/internal/app"
	"github.com/guttosm/nsepulse/internal/domain/models"
	"github.com/guttosm/nsepulse/internal/logger"
	"github.com/spf13/cobra"
)

func newMaterializeCmd() *cobra.Command {
	var (
		dates    []string
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Materialize derived metrics for one or more trade dates",
		Long: `Runs the aggregator once per --date (default: the scheduler's target date).
Rows that already exist are kept, so re-running a date is safe.`,
		Example: "  nsepulse materialize --date 2024-01-02 --date 2024-01-03",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			if parallel > 0 {
				cfg.Scheduler.ReplayParallelism = parallel
			}

			db, err := app.InitPostgres(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			svc, err := app.BuildServices(db, cfg)
			if err != nil {
				return err
			}

			targets, err := parseDates(dates, svc.Scheduler.TargetDate())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			results, err := svc.Scheduler.Replay(ctx, targets...)
			for _, r := range results {
				ev := logger.L().Info()
				if r.Err != nil {
					ev = logger.L().Error().Err(r.Err)
				}
				ev.Str("trade_date", r.Date.Format(models.DateLayout)).
					Int("facts_read", r.Result.FactsRead).
					Int("company_metrics_written", r.Result.CompanyMetricsWritten).
					Int("company_metrics_skipped", r.Result.CompanyMetricsSkipped).
					Bool("overview_written", r.Result.OverviewWritten).
					Msg("materialize")
			}
			if err != nil {
				return fmt.Errorf("materialization failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&dates, "date", nil, "Trade date (YYYY-MM-DD); repeatable or comma-separated")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "Dates to run concurrently (default SCHEDULER_REPLAY_PARALLELISM)")
	return cmd
}

// parseDates validates the --date values, dropping duplicates. No values means def.
func parseDates(raw []string, def time.Time) ([]time.Time, error) {
	if len(raw) == 0 {
		return []time.Time{def}, nil
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := models.ParseTradeDate("date", s)
		if err != nil {
			return nil, err
		}
		key := d.Format(models.DateLayout)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}
