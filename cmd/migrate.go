package cmd

import (
	"context"
	"fmt"

	"ck-services/core/config"
	"ck-services/core/database"
	"ck-services/core/logger"
	"ck-services/feature/catalog/models"
	"ck-services/feature/users"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	adminUser     string
	adminPassword string
)

// migrateCmd creates or updates the database schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Runs the schema migrations for the office_pages and users tables.
Optionally seeds an admin user when --admin-user and --admin-password are set.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&adminUser, "admin-user", "", "Seed an admin user with this username")
	migrateCmd.Flags().StringVar(&adminPassword, "admin-password", "", "Password for the seeded admin user")
	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.PageRecord{}, &users.User{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	l.Info("Schema migration complete")

	if adminUser != "" {
		if adminPassword == "" {
			return fmt.Errorf("--admin-password is required with --admin-user")
		}
		if _, err := users.NewStore(db).Upsert(context.Background(), adminUser, adminPassword); err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		l.Info("Admin user seeded", zap.String("username", adminUser))
	}

	return nil
}
