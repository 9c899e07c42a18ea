package shared

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenManager(t *testing.T) (*TokenManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenManager(client, time.Hour), mr
}

func TestIssueResolveRevoke(t *testing.T) {
	m, _ := newTokenManager(t)
	ctx := context.Background()

	token, err := m.Issue(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	require.NoError(t, m.Revoke(ctx, token))
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestResolveExpiredToken(t *testing.T) {
	m, mr := newTokenManager(t)
	ctx := context.Background()

	token, err := m.Issue(ctx, 7)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestResolveEmptyToken(t *testing.T) {
	m, _ := newTokenManager(t)
	_, err := m.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrSessionExpired)
}
