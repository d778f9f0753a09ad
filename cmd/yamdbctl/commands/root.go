// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	pgstore "github.com/taibuivan/yamdb/internal/platform/postgres"
)

var (
	// Global flags
	dbURL         string
	migrationsDir string
	verbose       bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "yamdbctl",
	Short: "Operator tool for the YaMDb API",
	Long: `yamdbctl runs maintenance tasks against the YaMDb database.

The database URL and migrations directory default to DATABASE_URL and
MIGRATION_PATH, the same variables the API server reads.`,
	Version:       constants.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "migrations-dir", "", "Directory for migration files (defaults to MIGRATION_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", "yamdbctl"))
}

// databaseSettings merges the flags over the environment.
func databaseSettings() (*config.Database, error) {
	if dbURL != "" {
		settings := &config.Database{URL: dbURL, MigrationPath: migrationsDir}
		if settings.MigrationPath == "" {
			settings.MigrationPath = os.Getenv("MIGRATION_PATH")
		}
		if settings.MigrationPath == "" {
			settings.MigrationPath = "./data/migrations"
		}
		return settings, nil
	}

	settings, err := config.LoadDatabase()
	if err != nil {
		return nil, err
	}
	if migrationsDir != "" {
		settings.MigrationPath = migrationsDir
	}
	return settings, nil
}

// connect opens a pool for commands that talk to PostgreSQL directly.
func connect(ctx context.Context, logger *slog.Logger) (*pgxpool.Pool, error) {
	settings, err := databaseSettings()
	if err != nil {
		return nil, err
	}
	return pgstore.NewPool(ctx, settings.URL, logger)
}
