package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Listing bounds. Requests outside the range are clamped, matching the API's
// documented pagination contract.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// TaskFilter narrows and pages a task listing. A nil IsDone means no
// completion-status filtering.
type TaskFilter struct {
	IsDone *bool
	Limit  int
	Offset int
}

// TaskPage is one page of a task listing plus the total number of rows the
// filter matches across all pages.
type TaskPage struct {
	Total int
	Tasks []*domain.Task
}

// TaskStats summarizes an owner's tasks by completion status.
type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// TaskStore defines the interface for task data persistence. Every read and
// write is scoped to an owner: a task owned by another user behaves exactly
// like a missing task.
type TaskStore interface {
	// Create saves a new task. Returns ErrInvalidEntity if the owner does
	// not exist, or a domain validation error for bad data.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID for the given owner.
	// Returns ErrTaskNotFound if it does not exist or belongs to another user.
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// List returns a page of the owner's tasks ordered by creation time,
	// newest first, along with the total match count.
	List(ctx context.Context, ownerID uuid.UUID, filter TaskFilter) (*TaskPage, error)

	// Update persists changes to an existing task's title, body, due time,
	// and completion flag. Returns ErrTaskNotFound if it does not exist or
	// belongs to another user.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID for the given owner.
	// Returns ErrTaskNotFound if it does not exist or belongs to another user.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// SetDone flips the completion flag and returns the updated task.
	// Returns ErrTaskNotFound if it does not exist or belongs to another user.
	SetDone(ctx context.Context, id, ownerID uuid.UUID, done bool) (*domain.Task, error)

	// CountByStatus reports the owner's task totals by completion status.
	CountByStatus(ctx context.Context, ownerID uuid.UUID) (*TaskStats, error)

	// WithTx returns a TaskStore that runs its operations on the given
	// transaction. The transaction lifecycle belongs to the caller.
	WithTx(tx *sql.Tx) TaskStore
}
