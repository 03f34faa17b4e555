// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/talento/internal/api"
)

/*
TestReadiness reports each dependency and degrades to 503 when one fails.
*/
func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name     string
		deps     api.HealthDependencies
		status   int
		expected string
		failing  []string
	}{
		{"all_healthy", api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK, "ready", nil},
		{"redis_down", api.HealthDependencies{CheckDatabase: healthy, CheckCache: broken}, http.StatusServiceUnavailable, "degraded", []string{"redis"}},
		{"both_down", api.HealthDependencies{CheckDatabase: broken, CheckCache: broken}, http.StatusServiceUnavailable, "degraded", []string{"postgres", "redis"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(tt.deps, slog.New(slog.NewTextHandler(io.Discard, nil)))

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			require.Equal(t, tt.status, recorder.Code)

			var body struct {
				Data struct {
					Status string `json:"status"`
					Checks []struct {
						Name  string `json:"name"`
						OK    bool   `json:"ok"`
						Error string `json:"error"`
					} `json:"checks"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.expected, body.Data.Status)
			assert.Len(t, body.Data.Checks, 2)

			var failing []string
			for _, check := range body.Data.Checks {
				if !check.OK {
					failing = append(failing, check.Name)
					assert.Equal(t, "connection refused", check.Error)
				}
			}
			assert.Equal(t, tt.failing, failing)
		})
	}
}

/*
TestReadiness_Deadline checks that a hanging dependency is cut off.
*/
func TestReadiness_Deadline(t *testing.T) {
	hanging := func(context context.Context) error {
		<-context.Done()
		return context.Err()
	}
	_, readiness := api.NewHealthHandlers(api.HealthDependencies{CheckCache: hanging}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}
