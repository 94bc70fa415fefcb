package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/taskdeck/taskdeck-api/internal/config"
)

// databaseWaiter blocks until the database accepts connections. The ping and
// sleep operations are injectable so tests can simulate any number of failed
// attempts without real delays.
type databaseWaiter struct {
	ping   func(ctx context.Context) error
	sleep  func(ctx context.Context, d time.Duration) error
	delay  time.Duration
	logger *slog.Logger
}

// newDatabaseWaiter creates a waiter that pings db at the given fixed
// interval.
func newDatabaseWaiter(db *sql.DB, delay time.Duration, log *slog.Logger) *databaseWaiter {
	if log == nil {
		log = slog.Default()
	}
	return &databaseWaiter{
		ping:   db.PingContext,
		sleep:  sleepContext,
		delay:  delay,
		logger: log,
	}
}

// wait retries until a ping succeeds. There is no attempt limit; a database
// that is still starting up is waited out. Each failed attempt emits exactly
// one diagnostic log line. Returns an error only when ctx is canceled.
func (w *databaseWaiter) wait(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		err := w.ping(ctx)
		if err == nil {
			w.logger.Info("database is ready", "attempts", attempt)
			return nil
		}

		w.logger.Info("waiting for database to be ready",
			"attempt", attempt,
			"retry_in", w.delay,
			"error", err.Error())

		if err := w.sleep(ctx, w.delay); err != nil {
			return fmt.Errorf("aborted while waiting for database: %w", err)
		}
	}
}

// sleepContext pauses for d unless ctx is canceled first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// openDatabase opens the connection pool. Opening does not dial; readiness
// is established by the waiter's pings.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	return db, nil
}

// configurePool applies connection pool limits once the database is known to
// be reachable.
func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}
