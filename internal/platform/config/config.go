// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config reads the Talento settings from the environment.

Settings are grouped by the component that consumes them, and each group maps
onto one environment prefix:

	SERVER_*       listener and environment switches
	DATABASE_*     PostgreSQL pool and migrations
	REDIS_*        party list cache
	JWT_*          staff token verification
	RATE_LIMIT_*   per-IP throttling
	CORS_*         browser origins

A loaded [Config] is read-only and handed to constructors by value or pointer.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Environment names recognised by [Config.IsDevelopment] and [Config.IsProduction].
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all runtime configuration for the Talento API.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	Server    Server    `envPrefix:"SERVER_"`
	Database  Database  `envPrefix:"DATABASE_"`
	Redis     Redis     `envPrefix:"REDIS_"`
	JWT       JWT       `envPrefix:"JWT_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
	CORS      CORS      `envPrefix:"CORS_"`

	// PartyCacheTTL bounds how stale the party search list may be. Zero disables caching.
	PartyCacheTTL time.Duration `env:"PARTY_CACHE_TTL" envDefault:"60s"`
}

// Server configures the HTTP listener.
type Server struct {
	Port string `env:"PORT" envDefault:"8080"`

	// TrustProxy honours X-Real-IP and X-Forwarded-For. Enable only behind an
	// ingress that overwrites them.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`
}

// Database configures the PostgreSQL pool and the migration source.
type Database struct {
	URL           string `env:"URL,required"`
	MaxConns      int32  `env:"MAX_CONNS"      envDefault:"10"`
	MinConns      int32  `env:"MIN_CONNS"      envDefault:"2"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
}

// Redis configures the cache client.
type Redis struct {
	URL      string `env:"URL,required"`
	PoolSize int    `env:"POOL_SIZE" envDefault:"10"`
}

// JWT configures verification of staff access tokens issued elsewhere.
type JWT struct {
	PublicKeyPath string `env:"PUBLIC_KEY_PATH,required"`
	Issuer        string `env:"ISSUER"          envDefault:"talento.app"`
}

// RateLimit configures the per-IP token bucket.
type RateLimit struct {
	RPS   float64 `env:"RPS"   envDefault:"50"`
	Burst int     `env:"BURST" envDefault:"100"`
}

// CORS configures which browser origins may call the API outside development.
type CORS struct {
	OriginSuffix string `env:"ORIGIN_SUFFIX" envDefault:"talento.app"`
}

// Load parses the process environment into a [Config].
func Load() (*Config, error) {
	return Parse(env.Options{})
}

// Parse is [Load] with explicit options, so tests can supply an environment map.
func Parse(options env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, options); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// validate rejects values that parse but cannot work.
func (c *Config) validate() error {
	var errs []error

	if c.PartyCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("PARTY_CACHE_TTL must not be negative, got %s", c.PartyCacheTTL))
	}
	if c.Database.MaxConns < 1 || c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, fmt.Errorf("DATABASE_MIN_CONNS (%d) and DATABASE_MAX_CONNS (%d) are inconsistent",
			c.Database.MinConns, c.Database.MaxConns))
	}
	if c.Redis.PoolSize < 1 {
		errs = append(errs, fmt.Errorf("REDIS_POOL_SIZE must be positive, got %d", c.Redis.PoolSize))
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// OriginSuffix returns the domain suffix trusted by CORS outside development.
func (c *Config) OriginSuffix() string {
	return c.CORS.OriginSuffix
}
