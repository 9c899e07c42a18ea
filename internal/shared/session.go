package shared

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenManager issues and resolves bearer tokens backed by Redis. Each token
// maps to a user ID and slides its TTL on every resolve.
type TokenManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(client *redis.Client, ttl time.Duration) *TokenManager {
	return &TokenManager{client: client, ttl: ttl}
}

// Issue creates a fresh token for the user.
func (m *TokenManager) Issue(ctx context.Context, userID int64) (string, error) {
	if m == nil || m.client == nil {
		return "", errors.New("token manager not initialised")
	}
	token := uuid.NewString()
	if err := m.client.Set(ctx, m.key(token), strconv.FormatInt(userID, 10), m.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve maps a token back to its user ID, refreshing the TTL.
// ErrSessionExpired is returned for unknown or expired tokens.
func (m *TokenManager) Resolve(ctx context.Context, token string) (int64, error) {
	if m == nil || m.client == nil {
		return 0, errors.New("token manager not initialised")
	}
	if token == "" {
		return 0, ErrSessionExpired
	}
	raw, err := m.client.Get(ctx, m.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSessionExpired
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrSessionExpired
	}
	_ = m.client.Expire(ctx, m.key(token), m.ttl).Err()
	return userID, nil
}

// Revoke deletes a token.
func (m *TokenManager) Revoke(ctx context.Context, token string) error {
	if m == nil || m.client == nil {
		return errors.New("token manager not initialised")
	}
	return m.client.Del(ctx, m.key(token)).Err()
}

// TTL exposes the configured session lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) key(token string) string {
	return "session:" + token
}
