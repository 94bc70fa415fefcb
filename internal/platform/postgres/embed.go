package postgres

import "embed"

// MigrationsFS holds the goose SQL migrations so the binary can apply them
// without a migrations directory on disk.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
