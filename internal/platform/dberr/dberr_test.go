// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/talento/internal/platform/apperr"
	"github.com/taibuivan/talento/internal/platform/dberr"
)

/*
TestWrap maps driver errors onto application error codes.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"unique_violation", &pgconn.PgError{Code: "23505", ConstraintName: "party_kind_taxid_key"}, apperr.CodeConflict},
		{"wrapped_unique_violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), apperr.CodeConflict},
		{"malformed_uuid", &pgconn.PgError{Code: "22P02"}, apperr.CodeNotFound},
		{"value_too_long", &pgconn.PgError{Code: "22001"}, apperr.CodeValidation},
		{"check_violation", &pgconn.PgError{Code: "23514", ConstraintName: "party_check"}, apperr.CodeValidation},
		{"deadline", context.DeadlineExceeded, apperr.CodeServiceUnavailable},
		{"connection_exception", &pgconn.PgError{Code: "08006"}, apperr.CodeServiceUnavailable},
		{"syntax_error", &pgconn.PgError{Code: "42601"}, apperr.CodeInternal},
		{"unknown", errors.New("boom"), apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")
			require.Error(t, wrapped)
			assert.True(t, apperr.IsCode(wrapped, tt.code), "got %v", apperr.As(wrapped))
		})
	}
}

/*
TestWrap_Nil verifies that a nil error passes through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

/*
TestWrap_ConflictKeepsCause verifies that the driver error stays reachable for logging.
*/
func TestWrap_ConflictKeepsCause(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "party_kind_nick_key"}
	wrapped := dberr.Wrap(pgErr, "insert_party")

	var target *pgconn.PgError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "party_kind_nick_key", target.ConstraintName)
	assert.True(t, dberr.IsUniqueViolation(wrapped))
	assert.True(t, dberr.IsUniqueViolation(pgErr))
	assert.False(t, dberr.IsUniqueViolation(errors.New("other")))
}
