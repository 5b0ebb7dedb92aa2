package main

//
//  @title           nsepulse API
//  @version         1.0
//  @description     NSE daily stock metrics: company metrics, market overview, leaderboards and trends.
//  @termsOfService  https://github.com/guttosm/nsepulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/nsepulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        company
//  @tag.description Per-company derived metrics
//
//  @tag.name        market
//  @tag.description Market-wide aggregates and trends
//
//  @tag.name        leaderboards
//  @tag.description Daily rankings
//
//  @tag.name        admin
//  @tag.description Operator actions
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"os"

	_ "github.com/guttosm/nsepulse/docs" // swagger docs
)

// main is the entry point of the nsepulse application.
//
// Subcommands:
//   - serve:       Starts the REST API and the daily scheduler.
//   - materialize: Materializes one or more trade dates and exits.
//   - migrate:     Applies or reports the embedded SQL migrations.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
