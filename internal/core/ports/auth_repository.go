package ports

import (
	"context"

	"github.com/applitrack/applitrack/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// UpdateCredentials replaces the username and password hash of the user.
	// Returns domain.ErrUserExists when the username belongs to another user.
	UpdateCredentials(ctx context.Context, id int64, username, passwordHash string) error
}
