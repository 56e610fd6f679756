package cmd

import (
	"context"
	"fmt"

	"ck-services/core/config"
	"ck-services/core/database"
	"ck-services/core/logger"
	"ck-services/feature/users"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// userCmd is the parent command for credential administration.
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage API credentials",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username> <password>",
	Short: "Create a user or update an existing user's password",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserStore(func(l *zap.Logger, store *users.Store) error {
			if _, err := store.Upsert(context.Background(), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
			l.Info("User created/updated", zap.String("username", args[0]))
			return nil
		})
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserStore(func(l *zap.Logger, store *users.Store) error {
			list, err := store.List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}
			for _, u := range list {
				l.Info("User", zap.Uint("id", u.ID), zap.String("username", u.Username))
			}
			l.Info("Total users", zap.Int("count", len(list)))
			return nil
		})
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserStore(func(l *zap.Logger, store *users.Store) error {
			if err := store.Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete user: %w", err)
			}
			l.Info("User deleted", zap.String("username", args[0]))
			return nil
		})
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDeleteCmd)
	RootCmd.AddCommand(userCmd)
}

// withUserStore loads config, connects and hands the store to fn.
func withUserStore(fn func(*zap.Logger, *users.Store) error) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	var db *gorm.DB
	if db, err = database.Connect(cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return fn(l, users.NewStore(db))
}
