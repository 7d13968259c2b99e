package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/applitrack/applitrack/internal/core/domain"
)

// uniqueViolation is the Postgres error code raised when a unique constraint
// (here: users.username) is hit.
const uniqueViolation = "23505"

type AuthRepository struct {
	db *sql.DB
}

func NewAuthRepository(db *sql.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users WHERE username = $1`, username)
}

func (r *AuthRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users WHERE id = $1`, id)
}

// UpdateCredentials replaces username and hash in one statement. Renaming to
// the user's own current name is a plain same-value update, so it succeeds;
// colliding with another user's name trips the unique constraint.
func (r *AuthRepository) UpdateCredentials(ctx context.Context, id int64, username, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET username = $2, password_hash = $3, updated_at = now()
		WHERE id = $1`, id, username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update credentials: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *AuthRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
