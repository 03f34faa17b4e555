// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command migrate applies, reverts or inspects the SQL migrations without starting the API.
//
// Usage:
//
//	migrate up
//	migrate down
//	migrate version
//
// Only DATABASE_URL and DATABASE_MIGRATION_PATH are read, so a developer can reset a
// local database without a JWT key or Redis at hand.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/talento/internal/platform/config"
	"github.com/taibuivan/talento/internal/platform/migration"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "talento-migrate"))

	if err := run(os.Args[1:], log); err != nil {
		log.Error("migrate_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(args []string, log *slog.Logger) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: migrate up|down|version")
	}

	var cfg config.Database
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "DATABASE_"}); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch args[0] {
	case "up":
		return migration.RunUp(cfg.URL, cfg.MigrationPath, log)
	case "down":
		return migration.RunDown(cfg.URL, cfg.MigrationPath, log)
	case "version":
		state, err := migration.Status(cfg.URL, cfg.MigrationPath, log)
		if err != nil {
			return err
		}
		log.Info("schema_version",
			slog.Uint64("version", uint64(state.Version)),
			slog.Bool("dirty", state.Dirty),
			slog.Bool("empty", state.Empty),
		)
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
