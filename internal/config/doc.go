// Package config defines the application's configuration structures and the
// logic for loading them from environment variables and config files.
package config
