package cmd

import (
	"context"
	"fmt"

	"ck-services/core/config"
	"ck-services/core/database"
	"ck-services/core/logger"
	"ck-services/feature/catalog"
	syncfeature "ck-services/feature/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd runs one reconciliation pass over the external feed. Scheduling
// (daily cadence, no overlapping invocations) belongs to cron.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one feed reconciliation pass",
	Long: `Fetches the external feed snapshot and reconciles it against the catalog.

Rows that fail validation are reported and skipped; the rest of the batch
still applies. Records missing from the feed are never deleted. A source
failure (unreachable feed, invalid payload) aborts the run before any write
and exits non-zero so the scheduler sees a failed run.`,
	RunE: runSync,
}

func init() {
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting feed reconciliation", zap.String("source", cfg.Feed.Source))

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	source, err := newFeedSource(cfg)
	if err != nil {
		return err
	}

	svc := syncfeature.NewService(catalog.NewStore(db), source, l)

	report, err := svc.RunOnce(ctx)
	if err != nil {
		return fmt.Errorf("sync run failed: %w", err)
	}

	printSyncReport(l, report)
	return nil
}

// printSyncReport logs the run report, surfacing a sample of row errors.
func printSyncReport(l *zap.Logger, report *syncfeature.Report) {
	l.Info("Sync report",
		zap.Int("total_rows", report.TotalRows),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("unchanged", report.Unchanged),
		zap.Int("row_errors", len(report.RowErrors)),
		zap.Int("superseded", len(report.Superseded)),
		zap.Int64("duration_ms", report.DurationMs),
	)

	maxShow := 5
	if len(report.RowErrors) < maxShow {
		maxShow = len(report.RowErrors)
	}
	for i := 0; i < maxShow; i++ {
		re := report.RowErrors[i]
		l.Warn("Row error",
			zap.Int("row_index", re.RowIndex),
			zap.String("reason", re.Reason),
		)
	}
	if len(report.RowErrors) > maxShow {
		l.Warn("Additional row errors not shown", zap.Int("count", len(report.RowErrors)-maxShow))
	}
}
