package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/cache"
)

func TestMemoryCache_ExpiraSegunReloj(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := cache.NewMemoryCache(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v1"), 15*time.Minute))

	val, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), val)

	now = now.Add(15 * time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "al cumplirse el TTL la entrada ya no es válida")
}

func TestMemoryCache_DeleteYCopia(t *testing.T) {
	c := cache.NewMemoryCache(nil)
	ctx := context.Background()
	buf := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", buf, time.Minute))
	buf[0] = 'X'

	val, ok, _ := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "abc", string(val))

	require.NoError(t, c.Delete(ctx, "k"))
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.NoError(t, c.Delete(ctx, "inexistente"))
}

func TestRedisCache_SetGetDeleteTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	c := cache.NewRedisCache(rdb, "warner:")
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "DASHBOARD_DATA_V1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "DASHBOARD_DATA_V1", []byte(`{"a":1}`), 900*time.Second))
	assert.True(t, mr.Exists("warner:DASHBOARD_DATA_V1"))

	val, ok, err := c.Get(ctx, "DASHBOARD_DATA_V1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(val))

	mr.FastForward(901 * time.Second)
	_, ok, err = c.Get(ctx, "DASHBOARD_DATA_V1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "DASHBOARD_DATA_V1", []byte("x"), time.Minute))
	require.NoError(t, c.Delete(ctx, "DASHBOARD_DATA_V1"))
	_, ok, _ = c.Get(ctx, "DASHBOARD_DATA_V1")
	assert.False(t, ok)
}

func TestRedisCache_ServidorCaido(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	c := cache.NewRedisCache(rdb, "")
	mr.Close()

	_, _, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
}
