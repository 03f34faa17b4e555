// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/talento/internal/platform/respond"
)

// readinessTimeout bounds each dependency ping.
const readinessTimeout = 2 * time.Second

// Check pings one dependency.
type Check func(context context.Context) error

// HealthDependencies are the probes behind /ready. A nil probe is skipped.
type HealthDependencies struct {
	CheckDatabase Check
	CheckCache    Check
}

// probe is one named dependency check.
type probe struct {
	name  string
	check Check
}

type checkResult struct {
	Name      string `json:"name"`
	IsOK      bool   `json:"ok"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

/*
NewHealthHandlers builds the orchestrator probes.

Description: /health answers 200 while the process runs. /ready pings every
dependency at once, each under its own deadline, and answers 503 with the
per-dependency results when any of them fails.
*/
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	var probes []probe
	for _, candidate := range []probe{{"postgres", deps.CheckDatabase}, {"redis", deps.CheckCache}} {
		if candidate.check != nil {
			probes = append(probes, candidate)
		}
	}

	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		results := runProbes(request.Context(), probes, logger)

		status, code := "ready", http.StatusOK
		for _, result := range results {
			if !result.IsOK {
				status, code = "degraded", http.StatusServiceUnavailable
				break
			}
		}

		respond.Status(writer, code, map[string]any{"status": status, "checks": results})
	}

	return liveness, readiness
}

// runProbes runs every probe concurrently; results keep the probe order.
func runProbes(parent context.Context, probes []probe, logger *slog.Logger) []checkResult {
	results := make([]checkResult, len(probes))

	var group errgroup.Group
	for index, dependency := range probes {
		group.Go(func() error {
			context, cancel := context.WithTimeout(parent, readinessTimeout)
			defer cancel()

			started := time.Now()
			err := dependency.check(context)

			results[index] = checkResult{Name: dependency.name, IsOK: err == nil, LatencyMS: time.Since(started).Milliseconds()}
			if err != nil {
				results[index].Error = err.Error()
				logger.Error("readiness_check_failed", slog.String("dependency", dependency.name), slog.Any("error", err))
			}
			return nil
		})
	}
	_ = group.Wait()

	return results
}
