// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries per-request values through [context.Context]: the
// correlation id, the request-scoped logger and the verified staff claims.
//
// Keys are unexported so no other package can read or overwrite them directly.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/talento/internal/platform/sec"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	loggerKey
	staffKey
)

// # Request Tracing

// WithRequestID attaches the X-Request-ID correlation value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the correlation value, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// # Structured Logging

// WithLogger attaches the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Logger returns the request-scoped logger, falling back to [slog.Default].
func Logger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Staff Identity

// WithStaff attaches the verified claims of the staff member making the request.
func WithStaff(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, staffKey, claims)
}

// Staff returns the verified claims, or nil for an anonymous request.
func Staff(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(staffKey).(*sec.AuthClaims)
	return claims
}

// StaffID returns the staff member's id, or "" for an anonymous request.
func StaffID(ctx context.Context) string {
	if claims := Staff(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
