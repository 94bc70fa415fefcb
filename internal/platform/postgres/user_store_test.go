package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// fakeResult implements sql.Result with a fixed rows-affected count.
type fakeResult struct{ rows int64 }

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

// fakeDBTX implements store.DBTX for exec-only operations, recording the
// statements and arguments it receives.
type fakeDBTX struct {
	execErr error
	rows    int64
	queries []string
	args    [][]any
}

func (f *fakeDBTX) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	if f.execErr != nil {
		return nil, f.execErr
	}
	return fakeResult{rows: f.rows}, nil
}

func (f *fakeDBTX) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, nil
}

func (f *fakeDBTX) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeDBTX) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

func storedTestUser() *domain.User {
	return &domain.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		FullName:       "Test User",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
}

func TestUserStoreCreateHashesPassword(t *testing.T) {
	t.Parallel()

	db := &fakeDBTX{rows: 1}
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

	user := storedTestUser()
	user.HashedPassword = ""
	user.Password = "plain-password-123"

	require.NoError(t, s.Create(context.Background(), user))

	assert.Empty(t, user.Password, "plaintext must be cleared after hashing")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("plain-password-123")))

	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], "INSERT INTO users")
}

func TestUserStoreCreateDuplicateEmail(t *testing.T) {
	t.Parallel()

	db := &fakeDBTX{execErr: &pgconn.PgError{Code: uniqueViolationCode}}
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

	user := storedTestUser()
	user.HashedPassword = ""
	user.Password = "plain-password-123"

	err := s.Create(context.Background(), user)
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUserStoreUpdateHashesPassword(t *testing.T) {
	t.Parallel()

	db := &fakeDBTX{rows: 1}
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

	user := storedTestUser()
	user.Password = "new-password-123"

	require.NoError(t, s.Update(context.Background(), user))

	assert.Empty(t, user.Password, "plaintext must be cleared after hashing")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("new-password-123")))
	assert.False(t, user.UpdatedAt.IsZero())

	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], "UPDATE users")

	// Placeholders: email, full_name, hashed_password, updated_at, id.
	require.Len(t, db.args[0], 5)
	assert.Equal(t, user.HashedPassword, db.args[0][2], "the stored hash is the new one")
}

func TestUserStoreUpdatePreservesHashWithoutNewPassword(t *testing.T) {
	t.Parallel()

	db := &fakeDBTX{rows: 1}
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

	user := storedTestUser()
	oldHash := user.HashedPassword

	require.NoError(t, s.Update(context.Background(), user))
	assert.Equal(t, oldHash, user.HashedPassword)
}

func TestUserStoreUpdateMissingRow(t *testing.T) {
	t.Parallel()

	db := &fakeDBTX{rows: 0}
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

	err := s.Update(context.Background(), storedTestUser())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStoreUpdateDuplicateEmail(t *testing.T) {
	t.Parallel()

	db := &fakeDBTX{execErr: &pgconn.PgError{Code: uniqueViolationCode}}
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

	err := s.Update(context.Background(), storedTestUser())
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUserStoreUpdateValidationFailure(t *testing.T) {
	t.Parallel()

	db := &fakeDBTX{rows: 1}
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

	user := storedTestUser()
	user.Email = ""

	err := s.Update(context.Background(), user)
	assert.ErrorIs(t, err, domain.ErrEmptyEmail)
	assert.Empty(t, db.queries, "invalid users never reach the database")
}

func TestUserStoreDelete(t *testing.T) {
	t.Parallel()

	db := &fakeDBTX{rows: 1}
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

	require.NoError(t, s.Delete(context.Background(), uuid.New()))

	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], "DELETE FROM users")
}

func TestUserStoreDeleteMissingRow(t *testing.T) {
	t.Parallel()

	db := &fakeDBTX{rows: 0}
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

	err := s.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
