// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Integrity violations raised by PostgreSQL are classified by SQLSTATE so that
// a race between two conflicting writes surfaces as a client error instead of
// a 500.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")

	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = apperr.Conflict("Resource already exists")

	// ErrMissingReference is returned when a write points at a row that no longer exists.
	ErrMissingReference = apperr.NotFound("Related resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Errors that are already an [apperr.AppError] pass through untouched.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Integrity violations
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrDuplicate.WithCause(err)
		case pgerrcode.ForeignKeyViolation:
			return ErrMissingReference.WithCause(err)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.StringDataRightTruncationDataException:
			return apperr.ValidationError("Invalid value").WithCause(err)
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsUniqueViolation reports whether err is a unique violation, optionally on
// a specific constraint. An empty constraint matches any unique index.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsNotFound reports whether err means "no rows".
func IsNotFound(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	return apperr.IsCode(err, "NOT_FOUND")
}
