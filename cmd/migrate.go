package main

import (
	"fmt"

	"github.com/guttosm/nsepulse/config"
	migrations "github.com/guttosm/nsepulse/db"
	"github.com/guttosm/nsepulse/internal/app"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|status]",
		Short:     "Apply or inspect the embedded database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.InitPostgres(config.AppConfig)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			goose.SetBaseFS(migrations.Migrations)
			if err := goose.SetDialect("postgres"); err != nil {
				return fmt.Errorf("goose dialect: %w", err)
			}

			switch args[0] {
			case "status":
				return goose.StatusContext(cmd.Context(), db, migrations.MigrationsDir)
			default:
				return goose.UpContext(cmd.Context(), db, migrations.MigrationsDir)
			}
		},
	}
	return cmd
}
