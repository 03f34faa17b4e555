// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/talento/internal/platform/ctxutil"
	"github.com/taibuivan/talento/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.RequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-42")
	assert.Equal(t, "req-42", ctxutil.RequestID(ctx))
}

/*
TestContext_Logger falls back to the default logger until one is attached.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, slog.Default(), ctxutil.Logger(ctx))

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.Logger(ctx))
}

/*
TestContext_Staff verifies that staff claims round-trip through the context.
*/
func TestContext_Staff(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.Staff(ctx))
	assert.Empty(t, ctxutil.StaffID(ctx))

	ctx = ctxutil.WithStaff(ctx, &sec.AuthClaims{UserID: "staff-123", Role: string(sec.RoleAgent)})

	claims := ctxutil.Staff(ctx)
	require.NotNil(t, claims)
	assert.Equal(t, "staff-123", claims.UserID)
	assert.Equal(t, string(sec.RoleAgent), claims.Role)
	assert.Equal(t, "staff-123", ctxutil.StaffID(ctx))
}
