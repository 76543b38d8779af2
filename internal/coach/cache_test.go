// ABOUTME: Tests for the Redis response cache using miniredis.
// ABOUTME: Cache errors are swallowed and never fail a summary.
package coach

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := NewRedisCache(mr.Addr())
	t.Cleanup(func() { _ = cache.Close() })
	return mr, cache
}

func TestCacheKey(t *testing.T) {
	a := CacheKey(ProviderOpenAI, "gpt-4o-mini", "digest")
	b := CacheKey(ProviderOpenAI, "gpt-4o-mini", "digest")
	c := CacheKey(ProviderDeepSeek, "gpt-4o-mini", "digest")
	d := CacheKey(ProviderOpenAI, "gpt-4o-mini", "other digest")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Contains(t, a, "fitlog:coach:")
}

func TestRedisCache_GetSet(t *testing.T) {
	mr, cache := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Ping(ctx))

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	val, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", val)

	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire after ttl")
}

func TestSummarize_UsesCache(t *testing.T) {
	_, cache := setupRedisCache(t)
	var calls int32
	srv := chatServer(t, http.StatusOK, okBody, &calls)
	client := testClient(srv.URL, cache)
	ctx := context.Background()

	first, err := client.Summarize(ctx, "same digest")
	require.NoError(t, err)
	second, err := client.Summarize(ctx, "same digest")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, err = client.Summarize(ctx, "new digest")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSummarize_CacheFailureIsIgnored(t *testing.T) {
	mr, cache := setupRedisCache(t)
	srv := chatServer(t, http.StatusOK, okBody, nil)
	client := testClient(srv.URL, cache)

	mr.Close()

	text, err := client.Summarize(context.Background(), "digest")
	require.NoError(t, err)
	assert.Equal(t, "Great week, keep it up.", text)
}

func TestSummarize_FailuresNotCached(t *testing.T) {
	mr, cache := setupRedisCache(t)
	srv := chatServer(t, http.StatusInternalServerError, `{}`, nil)

	_, err := testClient(srv.URL, cache).Summarize(context.Background(), "digest")
	require.Error(t, err)
	assert.Empty(t, mr.Keys())
}
