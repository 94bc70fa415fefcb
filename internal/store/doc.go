// Package store defines persistence interfaces and shared storage errors.
// Implementations live under internal/platform; services and handlers depend
// only on these interfaces.
package store
