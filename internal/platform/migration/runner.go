// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration wraps golang-migrate for the YaMDb schema.
//
// The API applies pending migrations at startup; yamdbctl exposes both
// directions explicitly.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies all pending UP migrations.
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	return run(dsn, migrationsPath, logger, "up", func(migrator *migrate.Migrate) error {
		return migrator.Up()
	})
}

// RunDown rolls back steps migrations. A non-positive steps reverts everything.
func RunDown(dsn, migrationsPath string, steps int, logger *slog.Logger) error {
	return run(dsn, migrationsPath, logger, "down", func(migrator *migrate.Migrate) error {
		if steps <= 0 {
			return migrator.Down()
		}
		return migrator.Steps(-steps)
	})
}

func run(dsn, migrationsPath string, logger *slog.Logger, direction string, apply func(*migrate.Migrate) error) error {
	migrator, err := migrate.New("file://"+migrationsPath, ToPgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}

	if isDirty {
		return fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", currentVersion)
	}

	logger.Info("migration_started",
		slog.String("direction", direction),
		slog.Int("current_version", int(currentVersion)),
	)

	if err := apply(migrator); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_no_change", slog.String("direction", direction))
			return nil
		}
		return fmt.Errorf("migration: %s failed: %w", direction, err)
	}

	newVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.String("direction", direction),
		slog.Int("from_version", int(currentVersion)),
		slog.Int("to_version", int(newVersion)),
	)

	return nil
}

// ToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// expected by the golang-migrate pgx driver.
func ToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
