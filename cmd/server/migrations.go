package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
)

// migrationsDir is the path of the embedded migration files inside
// postgres.MigrationsFS.
const migrationsDir = "migrations"

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), "component", "migrations")
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), "component", "migrations")
}

// configureGoose points goose at the embedded migrations and the slog
// adapter.
func configureGoose() error {
	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(postgres.MigrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// runMigrations applies all pending migrations. Called on every server
// start before the HTTP server comes up.
func runMigrations(db *sql.DB) error {
	if err := configureGoose(); err != nil {
		return err
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	slog.Info("migrations applied")
	return nil
}

// runMigrationCommand executes a single migration operation for the -migrate
// flag and returns without starting the server.
func runMigrationCommand(db *sql.DB, command string) error {
	if err := configureGoose(); err != nil {
		return err
	}

	switch command {
	case "up":
		return goose.Up(db, migrationsDir)
	case "down":
		return goose.Down(db, migrationsDir)
	case "status":
		return goose.Status(db, migrationsDir)
	case "version":
		return goose.Version(db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}
