package ports

import (
	"context"
	"time"

	"github.com/applitrack/applitrack/internal/core/domain"
)

// UpdateCredentialsInput carries the optional account changes. A nil field
// leaves the current value untouched.
type UpdateCredentialsInput struct {
	Username *string
	Password *string
}

// AuthService implements sign-up, login and account settings.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies the credentials and returns a signed bearer token.
	// Unknown usernames and wrong passwords fail identically with
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout revokes the token identified by jti until it would have expired.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	UpdateCredentials(ctx context.Context, userID int64, input UpdateCredentialsInput) error
}

// SessionStore tracks revoked bearer tokens so logout takes effect before
// token expiry.
type SessionStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
