package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Task validation errors. Each wraps ErrValidation so callers can classify
// them with a single errors.Is check.
var (
	ErrEmptyTaskID  = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrEmptyOwnerID = fmt.Errorf("%w: task owner ID cannot be empty", ErrValidation)
	ErrEmptyTitle   = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	ErrTitleTooLong = fmt.Errorf("%w: task title must be at most 255 characters long", ErrValidation)
)

// MaxTitleLength bounds task titles.
const MaxTitleLength = 255

// Task represents a single to-do item owned by a user. Body and DueAt are
// optional; nil means unset.
type Task struct {
	ID        uuid.UUID  `json:"id"`
	OwnerID   uuid.UUID  `json:"owner_id"`
	Title     string     `json:"title"`
	Body      *string    `json:"body"`
	DueAt     *time.Time `json:"due_at"`
	IsDone    bool       `json:"is_done"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewTask creates a Task for the given owner with a fresh ID and UTC
// timestamps. Returns an error if validation fails.
func NewTask(ownerID uuid.UUID, title string, body *string, dueAt *time.Time) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Body:      body,
		DueAt:     dueAt,
		IsDone:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the Task's fields.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.OwnerID == uuid.Nil {
		return ErrEmptyOwnerID
	}
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if len(t.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
