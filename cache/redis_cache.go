package cache

import (
	"context"
	"strings"
	"time"

	"github.com/golangid/botkit/tracer"
	"github.com/gomodule/redigo/redis"
)

// RedisCache redis implement interfaces.Cache
type RedisCache struct {
	pool *redis.Pool
}

// NewRedisCache constructor
func NewRedisCache(pool *redis.Pool) *RedisCache {
	return &RedisCache{pool: pool}
}

// Get method, missing key return redis.ErrNil
func (r *RedisCache) Get(ctx context.Context, key string) (data []byte, err error) {
	trace := tracer.StartTrace(ctx, "redis:get")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.SetTag("db.statement", "GET")
	trace.SetTag("db.key", key)

	cl := r.pool.Get()
	defer cl.Close()

	return redis.Bytes(cl.Do("GET", key))
}

// GetTTL method
func (r *RedisCache) GetTTL(ctx context.Context, key string) (dur time.Duration, err error) {
	trace := tracer.StartTrace(ctx, "redis:get_ttl")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.SetTag("db.statement", "TTL")
	trace.SetTag("db.key", key)

	cl := r.pool.Get()
	defer cl.Close()

	sec, err := redis.Int64(cl.Do("TTL", key))
	if err != nil {
		return dur, err
	}
	return time.Duration(sec) * time.Second, nil
}

// Set method, expire <= 0 keep the key forever
func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expire time.Duration) (err error) {
	trace := tracer.StartTrace(ctx, "redis:set")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.SetTag("db.statement", "SET")
	trace.SetTag("db.key", key)
	trace.SetTag("db.expired", expire.String())

	cl := r.pool.Get()
	defer cl.Close()

	if expire > 0 {
		_, err = cl.Do("SET", key, value, "EX", int(expire.Seconds()))
		return err
	}
	_, err = cl.Do("SET", key, value)
	return err
}

// Exists method
func (r *RedisCache) Exists(ctx context.Context, key string) (exist bool, err error) {
	trace := tracer.StartTrace(ctx, "redis:exists")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.SetTag("db.statement", "EXISTS")
	trace.SetTag("db.key", key)

	cl := r.pool.Get()
	defer cl.Close()

	return redis.Bool(cl.Do("EXISTS", key))
}

// Delete method, key with suffix * delete every matching key
func (r *RedisCache) Delete(ctx context.Context, key string) (err error) {
	trace := tracer.StartTrace(ctx, "redis:delete")
	defer func() { trace.SetError(err); trace.Finish() }()

	trace.SetTag("db.statement", "DEL")
	trace.SetTag("db.key", key)

	cl := r.pool.Get()
	defer cl.Close()

	keys := []string{key}
	if strings.HasSuffix(key, "*") {
		if keys, err = redis.Strings(cl.Do("KEYS", key)); err != nil {
			return err
		}
	}
	for _, k := range keys {
		if _, err = cl.Do("DEL", k); err != nil {
			return err
		}
	}
	return nil
}

// Disconnect close the pool
func (r *RedisCache) Disconnect(ctx context.Context) error {
	return r.pool.Close()
}
