// Command loader synchronizes the politician catalog from the published
// congress-legislators roster: fetch, normalize, reconcile, all-or-nothing.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"integrityindex/internal/platform/config"
	"integrityindex/internal/platform/logger"
	"integrityindex/internal/politician/store"
	"integrityindex/internal/roster"
	rostermetrics "integrityindex/internal/roster/metrics"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("roster load failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return err
	}
	if err := store.EnsureSchema(ctx, db); err != nil {
		return err
	}

	log.Info("fetching legislators roster", "url", cfg.LegislatorsURL)
	records, err := roster.NewFetcher(cfg.LegislatorsURL, cfg.RosterFetchTimeout).Fetch(ctx)
	if err != nil {
		return err
	}
	log.Info("roster fetched", "records", len(records))

	reconciler := roster.New(newRosterPostgresTx(db), log, rostermetrics.New())
	summary, err := reconciler.Run(ctx, records)
	if err != nil {
		return err
	}

	skipped := len(summary.Outcomes) - summary.Processed
	log.Info("roster load complete", "processed", summary.Processed, "skipped", skipped)
	return nil
}
