// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr translates pgx errors into [apperr.AppError] values.
//
// # Mapping
//
//   - pgx.ErrNoRows                     → NOT_FOUND
//   - SQLSTATE 23505 (unique_violation) → CONFLICT (constraint name kept in Cause)
//   - SQLSTATE 22P02 (malformed uuid)   → NOT_FOUND
//   - SQLSTATE 22001 (value too long)   → VALIDATION_ERROR
//   - SQLSTATE 23514 (check_violation)  → VALIDATION_ERROR
//   - connection failures / timeouts    → SERVICE_UNAVAILABLE
//   - anything else                     → INTERNAL_ERROR
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/talento/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// action is a snake_case label ("insert_party") recorded in the cause for logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("A record with the same identifying data already exists").
				WithCause(fmt.Errorf("%s: constraint %s: %w", action, pgErr.ConstraintName, err))
		case pgerrcode.InvalidTextRepresentation:
			// An id that is not a UUID cannot name an existing row
			return ErrNotFound
		case pgerrcode.StringDataRightTruncationDataException:
			return apperr.ValidationError("A value is longer than its field allows").
				WithCause(fmt.Errorf("%s: %w", action, err))
		case pgerrcode.CheckViolation:
			return apperr.ValidationError("The record is missing required data").
				WithCause(fmt.Errorf("%s: constraint %s: %w", action, pgErr.ConstraintName, err))
		}
	}

	// 3. Backing store unreachable: retryable by the caller
	if isUnavailable(err) {
		return apperr.ServiceUnavailable("Database is temporarily unavailable").
			WithCause(fmt.Errorf("%s: %w", action, err))
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsUniqueViolation reports whether err is (or wraps) a unique constraint violation.
func IsUniqueViolation(err error) bool {
	if apperr.IsCode(err, apperr.CodeConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// isUnavailable reports connection-level failures.
func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsConnectionException(pgErr.Code)
	}

	return pgconn.SafeToRetry(err)
}
