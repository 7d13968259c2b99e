package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applitrack/applitrack/internal/core/domain"
)

func TestAuthRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuthRepository(db)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "hash", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	user, err := repo.Create(context.Background(), &domain.User{
		Username: "alice", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRepository_Create_DuplicateUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuthRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

	_, err = repo.Create(context.Background(), &domain.User{Username: "alice", PasswordHash: "hash"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuthRepository(db)

	mock.ExpectQuery(`SELECT id, username, password_hash, created_at, updated_at FROM users WHERE username`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at", "updated_at"}))

	_, err = repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRepository_UpdateCredentials(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuthRepository(db)

	mock.ExpectExec(`UPDATE users SET username`).
		WithArgs(int64(7), "alice2", "newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateCredentials(context.Background(), 7, "alice2", "newhash")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRepository_UpdateCredentials_MissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuthRepository(db)

	mock.ExpectExec(`UPDATE users SET username`).
		WithArgs(int64(99), "ghost", "hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateCredentials(context.Background(), 99, "ghost", "hash")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRepository_UpdateCredentials_NameTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuthRepository(db)

	mock.ExpectExec(`UPDATE users SET username`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

	err = repo.UpdateCredentials(context.Background(), 7, "bob", "hash")
	assert.ErrorIs(t, err, domain.ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
