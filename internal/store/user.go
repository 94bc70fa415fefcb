package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. It validates the user and hashes
	// the plaintext password before insertion.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user. If a plaintext Password is set it is
	// hashed and replaces the stored hash.
	// Returns ErrUserNotFound if the user does not exist and ErrEmailExists
	// when updating to an email that is already taken.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID. Owned tasks are removed by the schema's
	// cascade rule. Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore that runs its operations on the given
	// transaction. The transaction lifecycle belongs to the caller.
	WithTx(tx *sql.Tx) UserStore
}
