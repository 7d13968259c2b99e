package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/applitrack/applitrack/internal/core/domain"
	"github.com/applitrack/applitrack/internal/core/ports"
)

// AuthService implements registration, login, logout and account settings.
type AuthService struct {
	repo      ports.AuthRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AuthRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

// Login answers the same error for an unknown username and a wrong password
// so callers cannot tell whether an account exists.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout denylists the token until its natural expiry; an already expired
// token needs no entry.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.sessions.Revoke(ctx, jti, ttl)
}

func (s *AuthService) UpdateCredentials(ctx context.Context, userID int64, input ports.UpdateCredentialsInput) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	username := user.Username
	if input.Username != nil {
		if *input.Username == "" {
			return domain.NewValidationError("username", "is required")
		}
		username = *input.Username
	}

	hash := user.PasswordHash
	if input.Password != nil {
		if *input.Password == "" {
			return domain.NewValidationError("password", "is required")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hash = string(h)
	}

	return s.repo.UpdateCredentials(ctx, userID, username, hash)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
