// Package api implements the HTTP handlers for the task management API:
// authentication (register, login, refresh, logout), the current-user
// profile, and owner-scoped task CRUD with pagination and statistics.
//
// Handlers depend on store and service interfaces so tests can substitute
// mocks. Error responses are sanitized through the error mapping in
// errors.go; internal detail is logged with redaction, never returned to
// clients.
package api
