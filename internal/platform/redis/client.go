// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis opens the client behind the party list cache.

Nothing in Redis is authoritative. Every key carries a TTL and the API keeps
serving from PostgreSQL when Redis is unreachable.
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/talento/internal/platform/config"
)

const (
	dialTimeout   = 3 * time.Second
	ioTimeout     = 2 * time.Second
	probeDeadline = 2 * time.Second
)

// Options parses settings.URL and sizes the pool from settings.PoolSize.
// A quarter of the pool, at least one connection, is kept idle.
func Options(settings config.Redis) (*redis.Options, error) {
	options, err := redis.ParseURL(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse REDIS_URL: %w", err)
	}

	options.PoolSize = settings.PoolSize
	options.MinIdleConns = 1
	options.MaxIdleConns = max(1, settings.PoolSize/4)
	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout
	options.ClientName = "talento-api"

	return options, nil
}

/*
NewClient opens a client and pings it once.

Parameters:
  - context: context.Context (bounds the first ping)
  - settings: config.Redis
  - logger: *slog.Logger

Returns:
  - *redis.Client: Ready client; the caller closes it
  - error: Parse or ping failures
*/
func NewClient(context context.Context, settings config.Redis, logger *slog.Logger) (*redis.Client, error) {
	options, err := Options(settings)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_ready",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)
	return client, nil
}

// Ping checks the server answers within a short deadline.
func Ping(ctx context.Context, client *redis.Client) error {
	probeCtx, cancel := context.WithTimeout(ctx, probeDeadline)
	defer cancel()

	if err := client.Ping(probeCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}
