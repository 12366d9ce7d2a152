package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, zap.NewNop(), "quickfit"), mr
}

func TestCache_SetGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "videos:beginner", []byte(`[{"video_id":"a"}]`), time.Minute))

	data, err := cache.Get(ctx, "videos:beginner")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"video_id":"a"}]`), data)
}

func TestCache_Get_Miss(t *testing.T) {
	cache, _ := setupTestCache(t)

	data, err := cache.Get(context.Background(), "videos:advanced")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCache_Delete(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "videos:beginner", []byte("x"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "videos:beginner"))

	data, err := cache.Get(ctx, "videos:beginner")
	require.NoError(t, err)
	assert.Nil(t, data)

	// Idempotent.
	require.NoError(t, cache.Delete(ctx, "videos:beginner"))
}

func TestCache_KeysArePrefixed(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "videos:beginner", []byte("x"), time.Minute))
	assert.True(t, mr.Exists("quickfit:videos:beginner"))
}

func TestCache_TTLExpiry(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "videos:beginner", []byte("x"), time.Minute))
	mr.FastForward(2 * time.Minute)

	data, err := cache.Get(ctx, "videos:beginner")
	require.NoError(t, err)
	assert.Nil(t, data)
}
