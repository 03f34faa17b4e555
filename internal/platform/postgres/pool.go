// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres owns the pgx pool shared by the artist, party and economics
// stores.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/talento/internal/platform/config"
	"github.com/taibuivan/talento/internal/platform/constants"
)

const (
	connLifetime  = time.Hour
	connIdleTime  = 10 * time.Minute
	healthPeriod  = time.Minute
	dialTimeout   = 5 * time.Second
	probeDeadline = 2 * time.Second
)

/*
NewPool connects to the database described by settings and pings it once.

Parameters:
  - context: context.Context (bounds the first connection)
  - settings: config.Database
  - logger: *slog.Logger

Returns:
  - *pgxpool.Pool: Ready pool; the caller closes it
  - error: Parse, connect or ping failures
*/
func NewPool(context context.Context, settings config.Database, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := Config(settings)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}

	if err := Ping(context, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_ready",
		slog.String("host", poolConfig.ConnConfig.Host),
		slog.String("database", poolConfig.ConnConfig.Database),
		slog.Int("min_conns", int(poolConfig.MinConns)),
		slog.Int("max_conns", int(poolConfig.MaxConns)),
	)
	return pool, nil
}

// Config turns settings into a pool configuration without connecting.
//
// Every session gets statement_timeout equal to the request timeout, and an
// application_name unless the URL already names one.
func Config(settings config.Database) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse DATABASE_URL: %w", err)
	}

	poolConfig.MaxConns = settings.MaxConns
	poolConfig.MinConns = settings.MinConns
	poolConfig.MaxConnLifetime = connLifetime
	poolConfig.MaxConnIdleTime = connIdleTime
	poolConfig.HealthCheckPeriod = healthPeriod
	poolConfig.ConnConfig.ConnectTimeout = dialTimeout

	params := poolConfig.ConnConfig.RuntimeParams
	if params["application_name"] == "" {
		params["application_name"] = constants.AppName
	}

	statementTimeout := fmt.Sprintf("SET statement_timeout = %d", constants.GlobalRequestTimeout.Milliseconds())
	poolConfig.AfterConnect = func(context context.Context, connection *pgx.Conn) error {
		_, err := connection.Exec(context, statementTimeout)
		return err
	}

	return poolConfig, nil
}

// Ping checks the pool can reach the server within a short deadline.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	probeCtx, cancel := context.WithTimeout(ctx, probeDeadline)
	defer cancel()

	if err := pool.Ping(probeCtx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}
