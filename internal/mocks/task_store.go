package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Custom behavior functions
	CreateFn        func(ctx context.Context, task *domain.Task) error
	GetByIDFn       func(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)
	ListFn          func(ctx context.Context, ownerID uuid.UUID, filter store.TaskFilter) (*store.TaskPage, error)
	UpdateFn        func(ctx context.Context, task *domain.Task) error
	DeleteFn        func(ctx context.Context, id, ownerID uuid.UUID) error
	SetDoneFn       func(ctx context.Context, id, ownerID uuid.UUID, done bool) (*domain.Task, error)
	CountByStatusFn func(ctx context.Context, ownerID uuid.UUID) (*store.TaskStats, error)

	// Default response values
	Task  *domain.Task
	Page  *store.TaskPage
	Stats *store.TaskStats
	Err   error

	// Call tracking for verification
	mu            sync.Mutex
	CreateCalls   []*domain.Task
	GetByIDCalls  []uuid.UUID
	ListFilters   []store.TaskFilter
	UpdateCalls   []*domain.Task
	DeleteCalls   []uuid.UUID
	SetDoneValues []bool
}

// Create implements the store.TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, task)
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.Err
}

// GetByID implements the store.TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	m.mu.Lock()
	m.GetByIDCalls = append(m.GetByIDCalls, id)
	m.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id, ownerID)
	}
	return m.Task, m.Err
}

// List implements the store.TaskStore interface
func (m *MockTaskStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.TaskFilter,
) (*store.TaskPage, error) {
	m.mu.Lock()
	m.ListFilters = append(m.ListFilters, filter)
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, filter)
	}
	return m.Page, m.Err
}

// Update implements the store.TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, task)
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return m.Err
}

// Delete implements the store.TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, ownerID)
	}
	return m.Err
}

// SetDone implements the store.TaskStore interface
func (m *MockTaskStore) SetDone(
	ctx context.Context,
	id, ownerID uuid.UUID,
	done bool,
) (*domain.Task, error) {
	m.mu.Lock()
	m.SetDoneValues = append(m.SetDoneValues, done)
	m.mu.Unlock()

	if m.SetDoneFn != nil {
		return m.SetDoneFn(ctx, id, ownerID, done)
	}
	return m.Task, m.Err
}

// CountByStatus implements the store.TaskStore interface
func (m *MockTaskStore) CountByStatus(ctx context.Context, ownerID uuid.UUID) (*store.TaskStats, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, ownerID)
	}
	return m.Stats, m.Err
}

// WithTx implements the store.TaskStore interface. The mock has no real
// transaction, so it returns itself.
func (m *MockTaskStore) WithTx(_ *sql.Tx) store.TaskStore {
	return m
}
