// Command migrate manages the storefront database schema.
//
// Usage:
//
//	migrate up             apply all pending migrations
//	migrate down           roll back the most recent migration
//	migrate goto <n>       migrate to a specific version
//	migrate version        print the current schema version
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(logger, os.Args[1:]); err != nil {
		logger.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: migrate <up|down|goto <n>|version>")
	}

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		return errors.New("POSTGRES_URL environment variable is required")
	}

	source := os.Getenv("MIGRATIONS_PATH")
	if source == "" {
		source = "file://migrations"
	}

	m, err := migrate.New(source, postgresURL)
	if err != nil {
		return fmt.Errorf("open migrations at %s: %w", source, err)
	}
	defer func() { _, _ = m.Close() }()

	switch cmd := args[0]; cmd {
	case "up":
		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				logger.Info("schema already up to date")
				return nil
			}
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("schema migrated")
	case "down":
		if err := m.Steps(-1); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				logger.Info("nothing to roll back")
				return nil
			}
			return fmt.Errorf("roll back migration: %w", err)
		}
		logger.Info("rolled back one migration")
	case "goto":
		if len(args) < 2 {
			return errors.New("goto requires a version number")
		}
		target, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := m.Migrate(uint(target)); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				logger.Info("already at requested version", "version", target)
				return nil
			}
			return fmt.Errorf("migrate to version %d: %w", target, err)
		}
		logger.Info("schema migrated", "version", target)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("no migrations applied yet")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}
		logger.Info("schema version", "version", version, "dirty", dirty)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	return nil
}
