// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/platform/migration"
)

var (
	// Migrate flags
	steps int
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Apply or roll back the SQL migrations.

Subcommands:
  up      - Apply pending migrations
  down    - Rollback migrations`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateUp(cmd)
	},
}

// migrateDownCmd rolls back migrations
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback migrations",
	Long: `Rollback applied migrations.

Examples:
  yamdbctl migrate down --steps 1      # Rollback last migration
  yamdbctl migrate down --steps 0      # Rollback everything`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateDown(cmd)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)

	migrateDownCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back (0 for all)")
}

func runMigrateUp(cmd *cobra.Command) error {
	settings, err := databaseSettings()
	if err != nil {
		return err
	}

	if err := migration.RunUp(settings.URL, settings.MigrationPath, newLogger()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
	return nil
}

func runMigrateDown(cmd *cobra.Command) error {
	if steps < 0 {
		return fmt.Errorf("--steps must not be negative")
	}

	settings, err := databaseSettings()
	if err != nil {
		return err
	}

	if err := migration.RunDown(settings.URL, settings.MigrationPath, steps, newLogger()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Migrations rolled back")
	return nil
}
