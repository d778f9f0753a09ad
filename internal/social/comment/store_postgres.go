// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectComments = fmt.Sprintf(`
	SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s
	FROM %s c
	JOIN %s a ON a.%s = c.%s`,
	schema.SocialComment.ID, schema.SocialComment.ReviewID, schema.SocialComment.AuthorID,
	schema.UserAccount.Username,
	schema.SocialComment.Text, schema.SocialComment.PubDate,
	schema.SocialComment.Table,
	schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialComment.AuthorID,
)

func scanComment(row pgx.Row, extra ...any) (*Comment, error) {
	comment := &Comment{}
	dest := append([]any{
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.PubDate,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return comment, nil
}

func (repository *PostgresRepository) ReviewTitleID(ctx context.Context, reviewID int64) (int64, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.SocialReview.TitleID, schema.SocialReview.Table, schema.SocialReview.ID,
	)

	var titleID int64
	err := repository.pool.QueryRow(ctx, query, reviewID).Scan(&titleID)
	if dberr.IsNotFound(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, dberr.Wrap(err, "review_title")
	}
	return titleID, true, nil
}

func (repository *PostgresRepository) List(ctx context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	query := fmt.Sprintf(`
		SELECT q.*, COUNT(*) OVER() FROM (%s WHERE c.%s = $1) q
		ORDER BY q.%s DESC
		LIMIT $2 OFFSET $3`,
		selectComments, schema.SocialComment.ReviewID, schema.SocialComment.ID,
	)

	rows, err := repository.pool.Query(ctx, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0, limit)
	total := 0
	for rows.Next() {
		comment, err := scanComment(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_comments")
	}

	// An empty page past the end still needs the total.
	if len(comments) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, schema.SocialComment.Table, schema.SocialComment.ReviewID)
		if err := repository.pool.QueryRow(ctx, countQuery, reviewID).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_comments")
		}
	}

	return comments, total, nil
}

func (repository *PostgresRepository) Get(ctx context.Context, reviewID, id int64) (*Comment, error) {
	query := selectComments + fmt.Sprintf(" WHERE c.%s = $1 AND c.%s = $2", schema.SocialComment.ID, schema.SocialComment.ReviewID)

	comment, err := scanComment(repository.pool.QueryRow(ctx, query, id, reviewID))
	if dberr.IsNotFound(err) {
		return nil, apperr.NotFound("Comment")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment")
	}
	return comment, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s
	`,
		schema.SocialComment.Table,
		schema.SocialComment.ReviewID, schema.SocialComment.AuthorID, schema.SocialComment.Text,
		schema.SocialComment.ID, schema.SocialComment.PubDate,
	)

	err := repository.pool.QueryRow(ctx, query, comment.ReviewID, comment.AuthorID, comment.Text).Scan(&comment.ID, &comment.PubDate)
	return dberr.Wrap(err, "create_comment")
}

func (repository *PostgresRepository) Update(ctx context.Context, comment *Comment) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.SocialComment.Table, schema.SocialComment.Text, schema.SocialComment.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, comment.ID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialComment.Table, schema.SocialComment.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
