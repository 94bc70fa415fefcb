package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	blacklist        auth.TokenBlacklist

	registry *prometheus.Registry
}

// newApplication constructs all stores and services from the configuration
// and an open database connection.
func newApplication(cfg *config.Config, db *sql.DB, log *slog.Logger) (*application, error) {
	if log == nil {
		log = slog.Default()
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	registry := prometheus.NewRegistry()

	return &application{
		config:           cfg,
		logger:           log,
		db:               db,
		userStore:        postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, log),
		taskStore:        postgres.NewPostgresTaskStore(db, log),
		jwtService:       jwtService,
		passwordVerifier: auth.NewBcryptVerifier(),
		blacklist:        auth.NewMemoryBlacklist(),
		registry:         registry,
	}, nil
}

// cleanup releases resources held by the application after the server has
// stopped serving requests.
func (app *application) cleanup() {
	app.logger.Info("running application cleanup")
}
