package main

import (
	"fmt"
	"log/slog"
	"os"

	"localeats/cmd"
	"localeats/internal/adapters/out/identity"
	"localeats/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "localeats",
		Short:        "LocalEats order lifecycle service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(newServeCommand(&envFile), newMigrateCommand(&envFile))
	return root
}

func newMigrateCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			configs, err := cmd.LoadConfig(*envFile)
			if err != nil {
				return err
			}
			logger := newLogger(configs.LogLevel)

			db, err := postgres.Open(configs.DBConfig())
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			if err = migrate(db); err != nil {
				return err
			}
			logger.InfoContext(c.Context(), "schema migrated", "driver", configs.DBDriver)
			return nil
		},
	}
}

func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err = sqlDB.Close(); err != nil {
		logger.Error("close database", "error", err)
	}
}

func migrate(db *gorm.DB) error {
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}
	if err := identity.Migrate(db); err != nil {
		return fmt.Errorf("migrate credentials: %w", err)
	}
	return nil
}
