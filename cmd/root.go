package cmd

import (
	"fmt"
	"os"

	"ck-services/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ck-services",
	Short: "Office Services Catalog API",
	Long: `Office Services Catalog API serves hierarchically-keyed office service
pages (state/office/area/service) and keeps the catalog synchronized with the
external spreadsheet feed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format for CLI ergonomics; debug level gives ISO8601
		// timestamps (DevConfig) instead of epoch (ProdConfig).
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
