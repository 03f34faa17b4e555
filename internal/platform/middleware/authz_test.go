// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/talento/internal/platform/ctxutil"
	"github.com/taibuivan/talento/internal/platform/middleware"
	"github.com/taibuivan/talento/internal/platform/sec"
)

type stubVerifier map[string]*sec.AuthClaims

func (s stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid")
}

func protected(role sec.UserRole) http.Handler {
	verifier := stubVerifier{
		"agent-token":   {UserID: "a1", Role: string(sec.RoleAgent)},
		"manager-token": {UserID: "m1", Role: string(sec.RoleManager)},
	}
	final := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	return middleware.Authenticate(verifier)(middleware.RequireRole(role)(final))
}

/*
TestRequireRole covers anonymous, malformed, invalid and under-privileged requests.
*/
func TestRequireRole(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.UserRole
		header string
		status int
	}{
		{"anonymous", sec.RoleAgent, "", http.StatusUnauthorized},
		{"malformed", sec.RoleAgent, "Token agent-token", http.StatusUnauthorized},
		{"invalid_token", sec.RoleAgent, "Bearer forged", http.StatusUnauthorized},
		{"agent_allowed", sec.RoleAgent, "Bearer agent-token", http.StatusOK},
		{"agent_forbidden", sec.RoleManager, "Bearer agent-token", http.StatusForbidden},
		{"manager_allowed", sec.RoleManager, "Bearer manager-token", http.StatusOK},
		{"manager_inherits_agent", sec.RoleAgent, "Bearer manager-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			protected(tt.role).ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

/*
TestAuthenticate_TagsRequestLogger checks that log lines written after
authentication carry the staff id.
*/
func TestAuthenticate_TagsRequestLogger(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	final := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctxutil.Logger(request.Context()).Info("handler_ran")
		writer.WriteHeader(http.StatusOK)
	})
	handler := middleware.Authenticate(stubVerifier{
		"agent-token": {UserID: "a1", Role: string(sec.RoleAgent)},
	})(final)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithLogger(request.Context(), logger))
	request.Header.Set("Authorization", "Bearer agent-token")

	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Contains(t, buffer.String(), `"staff_id":"a1"`)
}
