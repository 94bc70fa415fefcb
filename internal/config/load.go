package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied when neither the environment nor a config file
// provides a setting. The port default matches the address the service has
// always been deployed on.
const (
	DefaultPort                        = 8000
	DefaultLogLevel                    = "info"
	DefaultStartupProbeDelaySeconds    = 5
	DefaultTokenLifetimeMinutes        = 30
	DefaultRefreshTokenLifetimeMinutes = 10080 // 7 days
)

// Load reads configuration from environment variables and, optionally, a
// config.yaml file in the working directory. Environment variables use the
// TASKDECK_ prefix with underscores separating nested keys, e.g.
// TASKDECK_DATABASE_URL maps to database.url.
// Environment variables take precedence over config file values.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.startup_probe_delay_seconds", DefaultStartupProbeDelaySeconds)
	v.SetDefault("auth.token_lifetime_minutes", DefaultTokenLifetimeMinutes)
	v.SetDefault("auth.refresh_token_lifetime_minutes", DefaultRefreshTokenLifetimeMinutes)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested keys explicitly so AutomaticEnv picks them up even when
	// no config file sets them first.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"server.startup_probe_delay_seconds",
		"database.url",
		"auth.jwt_secret",
		"auth.token_lifetime_minutes",
		"auth.refresh_token_lifetime_minutes",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment is the primary
		// source in deployed environments.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
