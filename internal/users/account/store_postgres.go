// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// Constraint names of users.account.
const (
	constraintUsername = "unique_account_username"
	constraintEmail    = "unique_account_email"
)

var (
	// ErrUsernameTaken is returned when another account owns the username.
	ErrUsernameTaken = apperr.Conflict("A user with that username already exists")

	// ErrEmailTaken is returned when another account owns the email.
	ErrEmailTaken = apperr.Conflict("A user with that email already exists")
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed account store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var userColumns = strings.Join([]string{
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
	schema.UserAccount.FirstName, schema.UserAccount.LastName, schema.UserAccount.Bio,
	schema.UserAccount.Role, schema.UserAccount.IsSuperuser, schema.UserAccount.Password,
	schema.UserAccount.LastLogin, schema.UserAccount.DateJoined,
}, ", ")

func scanUser(row pgx.Row, extra ...any) (*User, error) {
	user := &User{}
	dest := append([]any{
		&user.ID, &user.Username, &user.Email,
		&user.FirstName, &user.LastName, &user.Bio,
		&user.Role, &user.IsSuperuser, &user.PasswordHash,
		&user.LastLogin, &user.DateJoined,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return user, nil
}

// mapConflict turns a unique violation into the matching client error.
func mapConflict(err error, action string) error {
	switch {
	case dberr.IsUniqueViolation(err, constraintUsername):
		return ErrUsernameTaken.WithCause(err)
	case dberr.IsUniqueViolation(err, constraintEmail):
		return ErrEmailTaken.WithCause(err)
	default:
		return dberr.Wrap(err, action)
	}
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*User, int, error) {
	var conditions []string
	var args []any
	argID := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", schema.UserAccount.Username, argID))
		args = append(args, postgres.ContainsPattern(filter.Search))
		argID++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, userColumns, schema.UserAccount.Table, where, schema.UserAccount.Username, argID, argID+1)

	rows, err := repository.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*User, 0, limit)
	total := 0
	for rows.Next() {
		user, err := scanUser(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_users")
	}

	// An empty page past the end still needs the total.
	if len(users) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, schema.UserAccount.Table, where)
		if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_users")
		}
	}

	return users, total, nil
}

func (repository *PostgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	return repository.getBy(ctx, schema.UserAccount.ID, id)
}

func (repository *PostgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return repository.getBy(ctx, schema.UserAccount.Username, username)
}

func (repository *PostgresRepository) getBy(ctx context.Context, column string, value any) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, schema.UserAccount.Table, column)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, value))
	if dberr.IsNotFound(err) {
		return nil, apperr.NotFound("User")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "get_user")
	}
	return user, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.FirstName,
		schema.UserAccount.LastName, schema.UserAccount.Bio, schema.UserAccount.Role,
		schema.UserAccount.IsSuperuser, schema.UserAccount.Password,
		schema.UserAccount.ID, schema.UserAccount.DateJoined,
	)

	err := repository.pool.QueryRow(ctx, query,
		user.Username, user.Email, user.FirstName,
		user.LastName, user.Bio, string(user.Role),
		user.IsSuperuser, user.PasswordHash,
	).Scan(&user.ID, &user.DateJoined)

	return mapConflict(err, "create_user")
}

func (repository *PostgresRepository) Update(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.FirstName,
		schema.UserAccount.LastName, schema.UserAccount.Bio, schema.UserAccount.Role,
		schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.Bio, string(user.Role),
	)
	if err != nil {
		return mapConflict(err, "update_user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (repository *PostgresRepository) GetOrCreate(ctx context.Context, username, email string) (*User, bool, error) {
	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
		RETURNING %s
	`, schema.UserAccount.Table, schema.UserAccount.Username, schema.UserAccount.Email, userColumns)

	user, err := scanUser(repository.pool.QueryRow(ctx, insert, username, email))
	if err == nil {
		return user, true, nil
	}
	if !dberr.IsNotFound(err) {
		return nil, false, mapConflict(err, "insert_user")
	}

	// Nothing inserted: the pair exists, or one half belongs to someone else.
	pair := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Username, schema.UserAccount.Email,
	)
	user, err = scanUser(repository.pool.QueryRow(ctx, pair, username, email))
	if err == nil {
		return user, false, nil
	}
	if !dberr.IsNotFound(err) {
		return nil, false, dberr.Wrap(err, "get_user_pair")
	}

	taken := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.UserAccount.Table, schema.UserAccount.Username)
	var usernameTaken bool
	if err := repository.pool.QueryRow(ctx, taken, username).Scan(&usernameTaken); err != nil {
		return nil, false, dberr.Wrap(err, "check_username")
	}
	if usernameTaken {
		return nil, false, ErrUsernameTaken
	}
	return nil, false, ErrEmailTaken
}

func (repository *PostgresRepository) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.LastLogin, schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, id, at)
	if err != nil {
		return dberr.Wrap(err, "record_login")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

func (repository *PostgresRepository) UpsertSuperuser(ctx context.Context, username, email string, passwordHash *string) (*User, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %[1]s AS existing (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s)
		VALUES ($1, $2, $3, TRUE, COALESCE($4::text, ''))
		ON CONFLICT ON CONSTRAINT %[7]s DO UPDATE
		SET %[3]s = EXCLUDED.%[3]s,
		    %[4]s = EXCLUDED.%[4]s,
		    %[5]s = TRUE,
		    %[6]s = COALESCE($4::text, existing.%[6]s)
		RETURNING %[8]s
	`,
		table.Table, table.Username, table.Email, table.Role, table.IsSuperuser, table.Password,
		constraintUsername, userColumns,
	)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, username, email, string(sec.RoleAdmin), passwordHash))
	if err != nil {
		return nil, mapConflict(err, "upsert_superuser")
	}
	return user, nil
}
