// Copyright (c) 2026 Talento. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the SQL files under data/migrations with
// golang-migrate. The API runs [RunUp] on boot; cmd/migrate exposes all three
// entry points to operators.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// State is the schema version recorded in the database.
type State struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
	// Empty is true before the first migration has ever been applied.
	Empty bool `json:"empty"`
}

// RunUp applies every pending migration. A dirty database is refused.
func RunUp(databaseURL, migrationsPath string, logger *slog.Logger) error {
	return withMigrator(databaseURL, migrationsPath, logger, func(migrator *migrate.Migrate) error {
		before, err := readState(migrator)
		if err != nil {
			return err
		}
		if before.Dirty {
			return fmt.Errorf("migration: schema is dirty at version %d, fix it by hand and force the version", before.Version)
		}

		logger.Info("schema_migration_started", slog.Uint64("version", uint64(before.Version)))

		if err := migrator.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				logger.Info("schema_up_to_date", slog.Uint64("version", uint64(before.Version)))
				return nil
			}
			return fmt.Errorf("migration: up: %w", err)
		}

		after, err := readState(migrator)
		if err != nil {
			return err
		}
		logger.Info("schema_migrated",
			slog.Uint64("from_version", uint64(before.Version)),
			slog.Uint64("to_version", uint64(after.Version)),
		)
		return nil
	})
}

// RunDown reverts every applied migration. Meant for resetting local databases.
func RunDown(databaseURL, migrationsPath string, logger *slog.Logger) error {
	return withMigrator(databaseURL, migrationsPath, logger, func(migrator *migrate.Migrate) error {
		if err := migrator.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration: down: %w", err)
		}
		logger.Warn("schema_reverted")
		return nil
	})
}

// Status reports the current schema version without changing anything.
func Status(databaseURL, migrationsPath string, logger *slog.Logger) (State, error) {
	var state State
	err := withMigrator(databaseURL, migrationsPath, logger, func(migrator *migrate.Migrate) error {
		var err error
		state, err = readState(migrator)
		return err
	})
	return state, err
}

// withMigrator opens a migrator, hands it to run and always closes it.
func withMigrator(databaseURL, migrationsPath string, logger *slog.Logger, run func(*migrate.Migrate) error) error {
	migrator, err := migrate.New("file://"+migrationsPath, pgx5URL(databaseURL))
	if err != nil {
		return fmt.Errorf("migration: open: %w", err)
	}
	migrator.Log = slogBridge{logger: logger}

	runErr := run(migrator)

	sourceErr, databaseErr := migrator.Close()
	if closeErr := errors.Join(sourceErr, databaseErr); closeErr != nil {
		logger.Warn("migration_close_failed", slog.Any("error", closeErr))
	}
	return runErr
}

func readState(migrator *migrate.Migrate) (State, error) {
	version, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return State{Empty: true}, nil
	case err != nil:
		return State{}, fmt.Errorf("migration: read version: %w", err)
	}
	return State{Version: version, Dirty: dirty}, nil
}

// pgx5URL swaps a postgres scheme for the pgx5 one the migrate driver registers.
func pgx5URL(databaseURL string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(databaseURL, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return databaseURL
}

// slogBridge sends golang-migrate's own messages to the debug level.
type slogBridge struct {
	logger *slog.Logger
}

func (bridge slogBridge) Printf(format string, args ...any) {
	bridge.logger.Debug("migrate_driver", slog.String("message", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (bridge slogBridge) Verbose() bool {
	return bridge.logger.Enabled(context.Background(), slog.LevelDebug)
}
