// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/pkg/slice"
)

// Result reports what happened to a single table.
type Result struct {
	Label  string
	Read   int
	Before int64
	After  int64
	// Skipped is set when the fixture file does not exist.
	Skipped bool
}

// Loader owns the fixture and cleanup operations.
type Loader struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewLoader constructs a [Loader] over the shared pool.
func NewLoader(pool *pgxpool.Pool, logger *slog.Logger) *Loader {
	return &Loader{pool: pool, logger: logger}
}

// Parse reads a fixture and returns its mapped columns and raw records.
func Parse(table Table, reader io.Reader) ([]Column, [][]string, error) {
	csvReader := csv.NewReader(reader)

	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("dataset: %s: empty file", table.File)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: %s: %w", table.File, err)
	}

	columns, err := table.Map(header)
	if err != nil {
		return nil, nil, err
	}

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: %s: %w", table.File, err)
	}
	return columns, records, nil
}

// Load inserts every fixture found in dir, in dependency order, inside a
// single transaction. Rows whose id or natural key already exists are left
// untouched, so the command can be rerun safely. Sequences are advanced past
// the highest imported id afterwards.
func (l *Loader) Load(ctx context.Context, dir string) ([]Result, error) {
	results := make([]Result, 0, len(Tables))

	err := postgres.WithTx(ctx, l.pool, func(tx pgx.Tx) error {
		for _, table := range Tables {
			result, err := l.loadTable(ctx, tx, dir, table)
			if err != nil {
				return err
			}
			results = append(results, result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (l *Loader) loadTable(ctx context.Context, tx pgx.Tx, dir string, table Table) (Result, error) {
	result := Result{Label: table.Label}

	file, err := os.Open(filepath.Join(dir, table.File))
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("dataset_file_missing", slog.String("file", table.File))
		result.Skipped = true
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("dataset: open %s: %w", table.File, err)
	}
	defer file.Close()

	columns, records, err := Parse(table, file)
	if err != nil {
		return result, err
	}
	result.Read = len(records)

	if result.Before, err = count(ctx, tx, table.Name); err != nil {
		return result, err
	}

	query := table.InsertSQL(columns)
	batch := &pgx.Batch{}
	for line, record := range records {
		if len(record) != len(columns) {
			return result, fmt.Errorf("dataset: %s line %d: expected %d fields, got %d", table.File, line+2, len(columns), len(record))
		}
		batch.Queue(query, slice.Map(record, func(value string) any { return value })...)
	}

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return result, fmt.Errorf("dataset: insert %s: %w", table.File, err)
		}
	}

	if err := resetSequence(ctx, tx, table.Name); err != nil {
		return result, err
	}

	if result.After, err = count(ctx, tx, table.Name); err != nil {
		return result, err
	}

	l.logger.Info("dataset_table_loaded",
		slog.String("table", table.Name),
		slog.Int("read", result.Read),
		slog.Int64("inserted", result.After-result.Before),
	)
	return result, nil
}

// Clear deletes every row from the content tables, children first, and
// reports the row counts before and after.
func (l *Loader) Clear(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(Tables))

	err := postgres.WithTx(ctx, l.pool, func(tx pgx.Tx) error {
		for i := len(Tables) - 1; i >= 0; i-- {
			table := Tables[i]
			result := Result{Label: table.Label}

			var err error
			if result.Before, err = count(ctx, tx, table.Name); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, "DELETE FROM "+table.Name); err != nil {
				return fmt.Errorf("dataset: clear %s: %w", table.Name, err)
			}
			if result.After, err = count(ctx, tx, table.Name); err != nil {
				return err
			}

			results = append(results, result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("dataset_cleared", slog.Int("tables", len(results)))
	return results, nil
}

func count(ctx context.Context, tx pgx.Tx, table string) (int64, error) {
	var total int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&total); err != nil {
		return 0, fmt.Errorf("dataset: count %s: %w", table, err)
	}
	return total, nil
}

// resetSequence moves the id sequence past imported explicit ids so later
// inserts through the API do not collide with them.
func resetSequence(ctx context.Context, tx pgx.Tx, table string) error {
	query := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence($1, 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s", table)
	if _, err := tx.Exec(ctx, query, table); err != nil {
		return fmt.Errorf("dataset: reset sequence %s: %w", table, err)
	}
	return nil
}
