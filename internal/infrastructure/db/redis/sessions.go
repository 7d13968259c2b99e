package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRevoker keeps a denylist of logged-out token ids backed by Redis.
// Entries expire together with the token they blocked, so the set stays
// bounded.
// Key format: revoked:<jti>
type SessionRevoker struct {
	client *redis.Client
}

// NewSessionRevoker creates a SessionRevoker wrapping the given Redis client.
func NewSessionRevoker(client *redis.Client) *SessionRevoker {
	return &SessionRevoker{client: client}
}

// Revoke marks the token id as logged out until ttl elapses.
func (s *SessionRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been logged out.
func (s *SessionRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *SessionRevoker) key(jti string) string {
	return "revoked:" + jti
}
