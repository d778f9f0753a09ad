// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// PostgresRepository implements [Repository] for one taxonomy table.
type PostgresRepository struct {
	pool *pgxpool.Pool
	kind Kind
}

// NewPostgresRepository binds a repository to the table of kind.
func NewPostgresRepository(pool *pgxpool.Pool, kind Kind) *PostgresRepository {
	return &PostgresRepository{pool: pool, kind: kind}
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Term, int, error) {
	table := repository.kind.Table

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s ILIKE $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3
	`,
		table.ID, table.Name, table.Slug,
		table.Table,
		table.Name,
		table.ID,
	)

	// An empty search becomes "%%" and matches every term.
	pattern := postgres.ContainsPattern(filter.Search)

	rows, err := repository.pool.Query(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_terms")
	}
	defer rows.Close()

	terms := make([]*Term, 0, limit)
	total := 0
	for rows.Next() {
		term := &Term{}
		if err := rows.Scan(&term.ID, &term.Name, &term.Slug, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_term")
		}
		terms = append(terms, term)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_terms")
	}

	// An empty page past the end still needs the total.
	if len(terms) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s ILIKE $1`, table.Table, table.Name)
		if err := repository.pool.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_terms")
		}
	}

	return terms, total, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, term *Term) error {
	table := repository.kind.Table

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s`,
		table.Table, table.Name, table.Slug, table.ID,
	)

	err := repository.pool.QueryRow(ctx, query, term.Name, term.Slug).Scan(&term.ID)
	if dberr.IsUniqueViolation(err, "") {
		return apperr.Conflict(fmt.Sprintf("%s with slug %q already exists", repository.kind.Resource, term.Slug)).WithCause(err)
	}
	return dberr.Wrap(err, "create_term")
}

func (repository *PostgresRepository) DeleteBySlug(ctx context.Context, slug string) error {
	table := repository.kind.Table

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.Slug)

	tag, err := repository.pool.Exec(ctx, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_term")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound(repository.kind.Resource)
	}
	return nil
}
