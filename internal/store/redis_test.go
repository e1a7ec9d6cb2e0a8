package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
	closed  bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fake := newFakeRedis()
	c := &RedisCache{client: fake}

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", "cached", time.Hour))
	assert.Equal(t, "cached", fake.data[redisKeyPrefix+"k"])
	assert.Equal(t, time.Hour, fake.ttls[redisKeyPrefix+"k"])

	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cached", v)

	require.NoError(t, c.Set(ctx, "n", "x", -time.Second))
	assert.Equal(t, time.Duration(0), fake.ttls[redisKeyPrefix+"n"])

	require.NoError(t, c.Close())
	assert.True(t, fake.closed)
}

func TestRedisCache_GetError(t *testing.T) {
	t.Parallel()
	fake := newFakeRedis()
	fake.failGet = errors.New("LOADING Redis is loading the dataset in memory")
	c := &RedisCache{client: fake}

	_, ok, err := c.Get(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "redis: get cached narrative")
}
