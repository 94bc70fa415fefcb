// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces, using database/sql over the pgx stdlib driver. The goose
// migrations defining the schema live in the migrations subdirectory.
package postgres
