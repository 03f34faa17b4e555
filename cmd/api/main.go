// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api runs the Talento back-office HTTP API.
//
// Startup order: logger, configuration, PostgreSQL, Redis, migrations, token
// verifier, domain wiring, listener. Any failure before the listener starts is
// logged as startup_failure with the step that failed, and the process exits 1.
// Other failures are logged as server_failure.
// SIGINT or SIGTERM drains in-flight requests for constants.ShutdownTimeout.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/talento/internal/api"
	"github.com/taibuivan/talento/internal/core/artist"
	"github.com/taibuivan/talento/internal/core/economics"
	"github.com/taibuivan/talento/internal/core/party"
	"github.com/taibuivan/talento/internal/core/validation"
	"github.com/taibuivan/talento/internal/platform/config"
	"github.com/taibuivan/talento/internal/platform/constants"
	"github.com/taibuivan/talento/internal/platform/migration"
	pgstore "github.com/taibuivan/talento/internal/platform/postgres"
	redisstore "github.com/taibuivan/talento/internal/platform/redis"
	"github.com/taibuivan/talento/internal/platform/sec"
)

// startupDeadline bounds connecting to the stores so a bad URL fails fast.
const startupDeadline = 30 * time.Second

// stepError names the startup step that failed.
type stepError struct {
	step string
	err  error
}

func (e *stepError) Error() string { return e.step + ": " + e.err.Error() }

func (e *stepError) Unwrap() error { return e.err }

func step(name string, err error) error {
	if err == nil {
		return nil
	}
	return &stepError{step: name, err: err}
}

func main() {
	log := newLogger(slog.LevelInfo)

	signals, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(signals, log); err != nil {
		var failed *stepError
		if errors.As(err, &failed) {
			log.Error("startup_failure", slog.String("step", failed.step), slog.Any("error", failed.err))
		} else {
			log.Error("server_failure", slog.Any("error", err))
		}
		os.Exit(1)
	}
}

func run(signals context.Context, log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return step("load configuration", err)
	}
	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
	}
	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.Server.Port),
		slog.Duration("party_cache_ttl", cfg.PartyCacheTTL),
		slog.Float64("rate_limit_rps", cfg.RateLimit.RPS),
	)

	startup, cancelStartup := context.WithTimeout(signals, startupDeadline)
	defer cancelStartup()

	pool, err := pgstore.NewPool(startup, cfg.Database, log)
	if err != nil {
		return step("connect to postgres", err)
	}
	defer pool.Close()

	rdb, err := redisstore.NewClient(startup, cfg.Redis, log)
	if err != nil {
		return step("connect to redis", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn("redis_close_failed", slog.Any("error", err))
		}
	}()

	if err := migration.RunUp(cfg.Database.URL, cfg.Database.MigrationPath, log); err != nil {
		return step("run migrations", err)
	}

	verifier, err := sec.NewTokenVerifier(cfg.JWT.PublicKeyPath, cfg.JWT.Issuer)
	if err != nil {
		return step("load jwt public key", err)
	}

	background, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

	server := api.NewServer(background, cfg, log, verifier, wireHandlers(cfg, log, pool, rdb))

	listenErr := make(chan error, 1)
	go func() { listenErr <- server.ListenAndServe() }()

	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return step("listen", err)
		}
		return nil
	case <-signals.Done():
		log.Info("shutdown_signal_received", slog.Duration("drain_timeout", constants.ShutdownTimeout))
	}

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server_stopped")
	return nil
}

// wireHandlers builds every domain service over the shared pool and cache.
func wireHandlers(cfg *config.Config, log *slog.Logger, pool *pgxpool.Pool, rdb *redis.Client) api.Handlers {
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	artistService := artist.NewService(artist.NewPostgresRepository(pool), log)

	var partyCache party.ListCache
	if cfg.PartyCacheTTL > 0 {
		partyCache = party.NewRedisListCache(rdb)
	}
	partyService := party.NewService(party.NewPostgresRepository(pool), partyCache, cfg.PartyCacheTTL, log)

	economicsService := economics.NewService(
		economics.NewPostgresRepository(pool),
		api.NewOwnerDirectory(artistService, partyService),
		log,
	)

	return api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Party:      party.NewHandler(partyService),
		Artist:     artist.NewHandler(artistService),
		Economics:  economics.NewHandler(economicsService),
		Validation: validation.NewHandler(),
	}
}

// newLogger builds the process-wide JSON logger and makes it the slog default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "talento"))
	slog.SetDefault(log)
	return log
}
