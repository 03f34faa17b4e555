// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/talento/internal/platform/apperr"
	"github.com/taibuivan/talento/internal/platform/constants"
	"github.com/taibuivan/talento/internal/platform/ctxutil"
	"github.com/taibuivan/talento/internal/platform/respond"
	"github.com/taibuivan/talento/internal/platform/sec"
)

// # Authentication

// TokenVerifier checks a bearer token and returns its claims.
//
// [sec.TokenVerifier] satisfies it in production; tests pass a stub.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate verifies the staff bearer token when one is present.
//
// # Flow
//  1. No Authorization header: the request continues anonymously and
//     [RequireRole] decides whether that is acceptable.
//  2. A header that is not "Bearer <token>", or a token that fails
//     verification, ends the request with 401.
//  3. Verified claims go into the context, and the request logger is tagged
//     with the staff id.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				ctxutil.Logger(request.Context()).Warn("staff_token_rejected", slog.Any("error", err))
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := ctxutil.WithStaff(request.Context(), claims)
			ctx = ctxutil.WithLogger(ctx, ctxutil.Logger(ctx).With(slog.String("staff_id", ctxutil.StaffID(ctx))))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Authorization

// RequireRole lets the request through when the caller's role is at least role
// on the admin > manager > agent ladder.
//
// Anonymous callers get 401 and under-privileged ones 403. It must be mounted
// after [Authenticate].
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.Staff(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !sec.UserRole(claims.Role).AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Requires the "+string(role)+" role"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
