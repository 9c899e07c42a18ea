package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *ReportCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReportCache(client, time.Minute)
}

func TestFetchPopulatesOnce(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	key, err := c.Key(ctx, "finance", "summary", "2024-05")
	require.NoError(t, err)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return map[string]float64{"balance": 600000}, nil
	}

	var first map[string]float64
	require.NoError(t, c.Fetch(ctx, key, &first, loader))
	var second map[string]float64
	require.NoError(t, c.Fetch(ctx, key, &second, loader))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestInvalidateChangesKey(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	before, err := c.Key(ctx, "ads", "summary")
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))
	after, err := c.Key(ctx, "ads", "summary")
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestNilCacheIsPassThrough(t *testing.T) {
	var c *ReportCache
	ctx := context.Background()

	key, err := c.Key(ctx, "finance", "summary")
	require.NoError(t, err)

	calls := 0
	var out map[string]int
	for range 2 {
		require.NoError(t, c.Fetch(ctx, key, &out, func(context.Context) (any, error) {
			calls++
			return map[string]int{"n": calls}, nil
		}))
	}
	assert.Equal(t, 2, calls)
	require.NoError(t, c.Invalidate(ctx))
}
