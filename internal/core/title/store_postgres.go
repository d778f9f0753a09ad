// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
PostgreSQL implementation of the title catalog.

  - Ratings come from a LEFT JOIN LATERAL over the reviews of each row, so a
    page of titles costs one statement.
  - Genres are aggregated with json_agg in a correlated sub-query.
  - COUNT(*) OVER() returns the total alongside the page.
  - Title rows and their genre links are written in one transaction.
*/
package title

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed title store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectTitles is the hydrated projection shared by List and Get. The
// caller appends WHERE conditions on the "t" alias.
var selectTitles = fmt.Sprintf(`
	SELECT
		t.%s, t.%s, t.%s, t.%s,
		rt.rating,
		c.%s, c.%s,
		COALESCE((
			SELECT json_agg(json_build_object('name', g.%s, 'slug', g.%s) ORDER BY g.%s)
			FROM %s g
			JOIN %s gt ON gt.%s = g.%s
			WHERE gt.%s = t.%s
		), '[]') AS genres,
		COUNT(*) OVER() AS total_count
	FROM %s t
	LEFT JOIN %s c ON c.%s = t.%s
	LEFT JOIN LATERAL (
		SELECT AVG(r.%s)::float8 AS rating
		FROM %s r
		WHERE r.%s = t.%s
	) rt ON TRUE
	WHERE TRUE`,
	schema.CoreTitle.ID, schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description,
	schema.CoreCategory.Name, schema.CoreCategory.Slug,
	schema.CoreGenre.Name, schema.CoreGenre.Slug, schema.CoreGenre.ID,
	schema.CoreGenre.Table,
	schema.GenreTitle.Table, schema.GenreTitle.GenreID, schema.CoreGenre.ID,
	schema.GenreTitle.TitleID, schema.CoreTitle.ID,
	schema.CoreTitle.Table,
	schema.CoreCategory.Table, schema.CoreCategory.ID, schema.CoreTitle.CategoryID,
	schema.SocialReview.Score,
	schema.SocialReview.Table,
	schema.SocialReview.TitleID, schema.CoreTitle.ID,
)

func scanTitle(row pgx.Row, total *int) (*Title, error) {
	var (
		title        Title
		mean         *float64
		categoryName *string
		categorySlug *string
		genres       []byte
	)

	if err := row.Scan(&title.ID, &title.Name, &title.Year, &title.Description, &mean, &categoryName, &categorySlug, &genres, total); err != nil {
		return nil, err
	}

	title.Rating = RoundRating(mean)
	if categorySlug != nil {
		title.Category = &reference.Term{Name: *categoryName, Slug: *categorySlug}
	}

	title.Genre = []reference.Term{}
	if err := json.Unmarshal(genres, &title.Genre); err != nil {
		return nil, fmt.Errorf("decode genres: %w", err)
	}

	return &title, nil
}

// filterConditions renders the WHERE conditions of a title filter on the
// "t" and "c" aliases, numbering placeholders from $1.
func filterConditions(filter Filter) (string, []any) {
	var conditions strings.Builder
	var args []any
	argID := 1

	if filter.Category != "" {
		conditions.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.CoreCategory.Slug, argID))
		args = append(args, filter.Category)
		argID++
	}

	if filter.Genre != "" {
		conditions.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM %s gt2 JOIN %s g2 ON g2.%s = gt2.%s
			WHERE gt2.%s = t.%s AND g2.%s = $%d)`,
			schema.GenreTitle.Table, schema.CoreGenre.Table, schema.CoreGenre.ID, schema.GenreTitle.GenreID,
			schema.GenreTitle.TitleID, schema.CoreTitle.ID, schema.CoreGenre.Slug, argID,
		))
		args = append(args, filter.Genre)
		argID++
	}

	if filter.Name != "" {
		conditions.WriteString(fmt.Sprintf(" AND t.%s ILIKE $%d", schema.CoreTitle.Name, argID))
		args = append(args, postgres.ContainsPattern(filter.Name))
		argID++
	}

	if filter.Year != nil {
		conditions.WriteString(fmt.Sprintf(" AND t.%s = $%d", schema.CoreTitle.Year, argID))
		args = append(args, *filter.Year)
	}

	return conditions.String(), args
}

/*
List returns a filtered, paginated slice of titles and the total count.
*/
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	conditions, args := filterConditions(filter)
	argID := len(args) + 1

	query := selectTitles + conditions +
		fmt.Sprintf(" ORDER BY t.%s DESC LIMIT $%d OFFSET $%d", schema.CoreTitle.ID, argID, argID+1)

	rows, err := repository.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0, limit)
	total := 0
	for rows.Next() {
		title, err := scanTitle(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_titles")
	}

	// An empty page past the end still needs the total.
	if len(titles) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s t LEFT JOIN %s c ON c.%s = t.%s WHERE TRUE`,
			schema.CoreTitle.Table, schema.CoreCategory.Table, schema.CoreCategory.ID, schema.CoreTitle.CategoryID,
		) + conditions

		if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_titles")
		}
	}

	return titles, total, nil
}

// Get returns one hydrated title.
func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Title, error) {
	query := selectTitles + fmt.Sprintf(" AND t.%s = $1", schema.CoreTitle.ID)

	var total int
	title, err := scanTitle(repository.pool.QueryRow(ctx, query, id), &total)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Title")
		}
		return nil, dberr.Wrap(err, "get_title")
	}
	return title, nil
}

func (repository *PostgresRepository) CategoryID(ctx context.Context, slug string) (int64, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreCategory.ID, schema.CoreCategory.Table, schema.CoreCategory.Slug,
	)

	var id int64
	err := repository.pool.QueryRow(ctx, query, slug).Scan(&id)
	if dberr.IsNotFound(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, dberr.Wrap(err, "resolve_category")
	}
	return id, true, nil
}

func (repository *PostgresRepository) GenreIDs(ctx context.Context, slugs []string) (map[string]int64, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ANY($1)`,
		schema.CoreGenre.Slug, schema.CoreGenre.ID, schema.CoreGenre.Table, schema.CoreGenre.Slug,
	)

	rows, err := repository.pool.Query(ctx, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, "resolve_genres")
	}
	defer rows.Close()

	ids := make(map[string]int64, len(slugs))
	for rows.Next() {
		var (
			slug string
			id   int64
		)
		if err := rows.Scan(&slug, &id); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		ids[slug] = id
	}

	return ids, dberr.Wrap(rows.Err(), "iterate_genres")
}

func (repository *PostgresRepository) Create(ctx context.Context, record *Record) error {
	err := postgres.WithTx(ctx, repository.pool, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s)
			VALUES ($1, $2, $3, $4)
			RETURNING %s
		`,
			schema.CoreTitle.Table, schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description, schema.CoreTitle.CategoryID,
			schema.CoreTitle.ID,
		)

		if err := tx.QueryRow(ctx, query, record.Name, record.Year, record.Description, record.CategoryID).Scan(&record.ID); err != nil {
			return err
		}

		return insertGenreLinks(ctx, tx, record.ID, record.GenreIDs)
	})

	return dberr.Wrap(err, "create_title")
}

func (repository *PostgresRepository) Update(ctx context.Context, record *Record) error {
	err := postgres.WithTx(ctx, repository.pool, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`
			UPDATE %s
			SET %s = $2, %s = $3, %s = $4, %s = $5
			WHERE %s = $1
		`,
			schema.CoreTitle.Table,
			schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description, schema.CoreTitle.CategoryID,
			schema.CoreTitle.ID,
		)

		tag, err := tx.Exec(ctx, query, record.ID, record.Name, record.Year, record.Description, record.CategoryID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Title")
		}

		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.GenreTitle.Table, schema.GenreTitle.TitleID)
		if _, err := tx.Exec(ctx, deleteQuery, record.ID); err != nil {
			return err
		}

		return insertGenreLinks(ctx, tx, record.ID, record.GenreIDs)
	})

	return dberr.Wrap(err, "update_title")
}

// insertGenreLinks queues one insert per genre in a single batch round-trip.
func insertGenreLinks(ctx context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.GenreTitle.Table, schema.GenreTitle.GenreID, schema.GenreTitle.TitleID,
	)

	batch := &pgx.Batch{}
	for _, genreID := range genreIDs {
		batch.Queue(query, genreID, titleID)
	}

	return tx.SendBatch(ctx, batch).Close()
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreTitle.Table, schema.CoreTitle.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}
	return nil
}
