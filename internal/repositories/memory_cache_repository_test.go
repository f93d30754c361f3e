package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRepository(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCacheRepository()

	_, err := cache.Get(ctx, "board:snapshot")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "board:snapshot", []byte(`{"id":"1"}`), 0))
	val, err := cache.Get(ctx, "board:snapshot")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, val)

	n, err := cache.Incr(ctx, "board:refreshes")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = cache.Incr(ctx, "board:refreshes")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = cache.Incr(ctx, "board:snapshot")
	assert.Error(t, err)

	require.NoError(t, cache.Del(ctx, "board:snapshot", "board:refreshes"))
	_, err = cache.Get(ctx, "board:refreshes")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheRepository_Expiration(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.Local)
	cache := &MemoryCacheRepository{items: make(map[string]memoryItem), now: func() time.Time { return now }}

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	_, err := cache.Get(ctx, "k")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
