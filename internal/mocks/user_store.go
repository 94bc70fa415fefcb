package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Custom behavior functions
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn     func(ctx context.Context, user *domain.User) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	// Default response values
	User *domain.User
	Err  error

	// Call tracking for verification
	mu          sync.Mutex
	CreateCalls []*domain.User
	GetByIDIDs  []uuid.UUID
	GetByEmails []string
	UpdateCalls []*domain.User
	DeleteIDs   []uuid.UUID
}

// Create implements the store.UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, user)
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return m.Err
}

// GetByID implements the store.UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	m.GetByIDIDs = append(m.GetByIDIDs, id)
	m.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.User, m.Err
}

// GetByEmail implements the store.UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	m.GetByEmails = append(m.GetByEmails, email)
	m.mu.Unlock()

	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.User, m.Err
}

// Update implements the store.UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, user)
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	return m.Err
}

// Delete implements the store.UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.DeleteIDs = append(m.DeleteIDs, id)
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// WithTx implements the store.UserStore interface. The mock has no real
// transaction, so it returns itself.
func (m *MockUserStore) WithTx(_ *sql.Tx) store.UserStore {
	return m
}
