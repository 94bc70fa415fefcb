// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these reusable
// implementations keep mock behavior consistent across packages. Each mock
// exposes function fields for custom per-test behavior, falls back to default
// value fields when no function is set, and tracks calls for verification.
//
// Usage:
//
//	taskStore := &mocks.MockTaskStore{
//		GetByIDFn: func(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
//			return nil, store.ErrTaskNotFound
//		},
//	}
package mocks
