package cache

import (
	"context"
	"testing"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/rafaeljusto/redigomock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockCache() (*RedisCache, *redigomock.Conn) {
	conn := redigomock.NewConn()
	pool := &redis.Pool{Dial: func() (redis.Conn, error) { return conn, nil }}
	return NewRedisCache(pool), conn
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()

	t.Run("Test Set with expiry and Get", func(t *testing.T) {
		c, conn := newMockCache()
		set := conn.Command("SET", "auth:kora", "token", "EX", 60).Expect("OK")
		get := conn.Command("GET", "auth:kora").Expect([]byte("token"))

		require.NoError(t, c.Set(ctx, "auth:kora", "token", time.Minute))
		data, err := c.Get(ctx, "auth:kora")
		require.NoError(t, err)
		assert.Equal(t, "token", string(data))
		assert.Equal(t, 1, conn.Stats(set))
		assert.Equal(t, 1, conn.Stats(get))
	})

	t.Run("Test Get missing key", func(t *testing.T) {
		c, conn := newMockCache()
		conn.Command("GET", "missing").Expect(nil)

		_, err := c.Get(ctx, "missing")
		assert.ErrorIs(t, err, redis.ErrNil)
	})

	t.Run("Test Exists and TTL", func(t *testing.T) {
		c, conn := newMockCache()
		conn.Command("EXISTS", "k").Expect(int64(1))
		conn.Command("TTL", "k").Expect(int64(30))

		ok, err := c.Exists(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		ttl, err := c.GetTTL(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, ttl)
	})

	t.Run("Test Delete pattern", func(t *testing.T) {
		c, conn := newMockCache()
		conn.Command("KEYS", "auth:*").Expect([]interface{}{[]byte("auth:a"), []byte("auth:b")})
		delA := conn.Command("DEL", "auth:a").Expect(int64(1))
		delB := conn.Command("DEL", "auth:b").Expect(int64(1))

		require.NoError(t, c.Delete(ctx, "auth:*"))
		assert.Equal(t, 1, conn.Stats(delA))
		assert.Equal(t, 1, conn.Stats(delB))
	})
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "auth:a", []byte("x"), time.Minute))
	require.NoError(t, c.Set(ctx, "auth:b", "y", 0))
	require.NoError(t, c.Set(ctx, "other", "z", 0))

	v, err := c.Get(ctx, "auth:a")
	require.NoError(t, err)
	assert.Equal(t, "x", string(v))

	ttl, _ := c.GetTTL(ctx, "auth:b")
	assert.Equal(t, time.Duration(-1), ttl)

	now = now.Add(2 * time.Minute)
	_, err = c.Get(ctx, "auth:a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Delete(ctx, "auth:*"))
	ok, _ := c.Exists(ctx, "auth:b")
	assert.False(t, ok)
	ok, _ = c.Exists(ctx, "other")
	assert.True(t, ok)
}
