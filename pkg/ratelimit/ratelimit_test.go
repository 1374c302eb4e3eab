package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	l := NewAttemptLimiter(rdb, "signin", 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i+1)
	}
	ok, err := l.Allow(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allow(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(61 * time.Second)
	ok, err = l.Allow(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAttemptLimiter_Reset(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	l := NewAttemptLimiter(rdb, "signin", 1, time.Minute)
	ctx := context.Background()
	ok, _ := l.Allow(ctx, "alice")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "alice")
	assert.False(t, ok)

	require.NoError(t, l.Reset(ctx, "alice"))
	ok, _ = l.Allow(ctx, "alice")
	assert.True(t, ok)
}

func TestAttemptLimiter_Disabled(t *testing.T) {
	l := NewAttemptLimiter(nil, "signin", 1, time.Minute)
	for i := 0; i < 5; i++ {
		ok, err := l.Allow(context.Background(), "alice")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
