package main

import (
	"github.com/guttosm/nsepulse/config"
	"github.com/guttosm/nsepulse/internal/logger"
	"github.com/spf13/cobra"
)

// newRootCmd builds the nsepulse command tree. Configuration and the logger
// are loaded once before any subcommand runs.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nsepulse",
		Short: "NSE daily stock metrics materialization and query service",
		Long: `nsepulse turns raw daily price facts into derived company metrics and
market overviews, and serves them together with leaderboards over HTTP.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load configuration from environment or .env file
			config.LoadConfig()
			logger.Configure(config.AppConfig.Log.Level, config.AppConfig.Log.Pretty)
		},
	}

	root.AddCommand(newServeCmd(), newMaterializeCmd(), newMigrateCmd())
	return root
}
