// Package main implements the entry point for the taskdeck API server,
// which provides JWT-authenticated task management over PostgreSQL.
//
// Startup is strictly ordered: load configuration, set up logging, wait for
// the database to accept connections, apply pending migrations, then start
// the HTTP server. A database that is still starting is waited out
// indefinitely; a migration failure is fatal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status, version) and exit")
	flag.Parse()

	os.Exit(run(*migrateCmd))
}

// run executes the startup sequence and returns the process exit code.
func run(migrateCmd string) int {
	cfg, err := config.Load()
	if err != nil {
		// The logger is configured from the config, so this failure can only
		// go to the standard logger.
		log.Printf("failed to load configuration: %v", err)
		return 1
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Printf("failed to set up logger: %v", err)
		return 1
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		return 1
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	waiter := newDatabaseWaiter(db,
		time.Duration(cfg.Server.StartupProbeDelaySeconds)*time.Second, appLogger)

	if migrateCmd != "" {
		if err := waiter.wait(ctx); err != nil {
			slog.Error("aborted waiting for database", "error", err)
			return 1
		}
		if err := runMigrationCommand(db, migrateCmd); err != nil {
			slog.Error("migration command failed", "command", migrateCmd, "error", err)
			return 1
		}
		return 0
	}

	serve := func(ctx context.Context) error {
		configurePool(db)
		app, err := newApplication(cfg, db, appLogger)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		return app.startHTTPServer(ctx, app.setupRouter())
	}

	err = bootSequence(ctx,
		waiter.wait,
		func() error { return runMigrations(db) },
		serve)
	if err != nil {
		slog.Error("startup failed", "error", err)
		return 1
	}

	return 0
}

// bootSequence runs the ordered startup steps: block until the database is
// reachable, apply migrations, then serve. A migration failure stops the
// sequence before serve; serve runs at most once.
func bootSequence(
	ctx context.Context,
	wait func(context.Context) error,
	migrate func() error,
	serve func(context.Context) error,
) error {
	if err := wait(ctx); err != nil {
		return err
	}

	if err := migrate(); err != nil {
		return err
	}

	return serve(ctx)
}

// serverAddr formats the listen address for the configured port. The server
// binds all interfaces.
func serverAddr(port int) string {
	return fmt.Sprintf("0.0.0.0:%d", port)
}
