// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

// ErrAlreadyReviewed is returned for a second review of the same title by the same author.
var ErrAlreadyReviewed = apperr.Conflict("You have already reviewed this title")

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed review store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectReviews = fmt.Sprintf(`
	SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s
	FROM %s r
	JOIN %s a ON a.%s = r.%s`,
	schema.SocialReview.ID, schema.SocialReview.TitleID, schema.SocialReview.AuthorID,
	schema.UserAccount.Username,
	schema.SocialReview.Text, schema.SocialReview.Score, schema.SocialReview.PubDate,
	schema.SocialReview.Table,
	schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialReview.AuthorID,
)

func scanReview(row pgx.Row, extra ...any) (*Review, error) {
	review := &Review{}
	dest := append([]any{
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.PubDate,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return review, nil
}

func (repository *PostgresRepository) TitleExists(ctx context.Context, titleID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.CoreTitle.Table, schema.CoreTitle.ID)

	var exists bool
	err := repository.pool.QueryRow(ctx, query, titleID).Scan(&exists)
	return exists, dberr.Wrap(err, "title_exists")
}

func (repository *PostgresRepository) List(ctx context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	query := fmt.Sprintf(`
		SELECT q.*, COUNT(*) OVER() FROM (%s WHERE r.%s = $1) q
		ORDER BY q.%s DESC
		LIMIT $2 OFFSET $3`,
		selectReviews, schema.SocialReview.TitleID, schema.SocialReview.ID,
	)

	rows, err := repository.pool.Query(ctx, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0, limit)
	total := 0
	for rows.Next() {
		review, err := scanReview(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_reviews")
	}

	// An empty page past the end still needs the total.
	if len(reviews) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, schema.SocialReview.Table, schema.SocialReview.TitleID)
		if err := repository.pool.QueryRow(ctx, countQuery, titleID).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_reviews")
		}
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) Get(ctx context.Context, titleID, id int64) (*Review, error) {
	query := selectReviews + fmt.Sprintf(" WHERE r.%s = $1 AND r.%s = $2", schema.SocialReview.ID, schema.SocialReview.TitleID)

	review, err := scanReview(repository.pool.QueryRow(ctx, query, id, titleID))
	if dberr.IsNotFound(err) {
		return nil, apperr.NotFound("Review")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_review")
	}
	return review, nil
}

func (repository *PostgresRepository) HasReviewed(ctx context.Context, titleID, authorID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.SocialReview.Table, schema.SocialReview.TitleID, schema.SocialReview.AuthorID,
	)

	var exists bool
	err := repository.pool.QueryRow(ctx, query, titleID, authorID).Scan(&exists)
	return exists, dberr.Wrap(err, "has_reviewed")
}

func (repository *PostgresRepository) Create(ctx context.Context, review *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		schema.SocialReview.Table,
		schema.SocialReview.TitleID, schema.SocialReview.AuthorID, schema.SocialReview.Text, schema.SocialReview.Score,
		schema.SocialReview.ID, schema.SocialReview.PubDate,
	)

	err := repository.pool.QueryRow(ctx, query, review.TitleID, review.AuthorID, review.Text, review.Score).Scan(&review.ID, &review.PubDate)

	// Two concurrent submissions both pass the service check; the constraint decides.
	if dberr.IsUniqueViolation(err, schema.SocialReview.Constraint) {
		return ErrAlreadyReviewed.WithCause(err)
	}
	return dberr.Wrap(err, "create_review")
}

func (repository *PostgresRepository) Update(ctx context.Context, review *Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.SocialReview.Table, schema.SocialReview.Text, schema.SocialReview.Score, schema.SocialReview.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, review.ID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialReview.Table, schema.SocialReview.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}
