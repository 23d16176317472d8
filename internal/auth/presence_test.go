package auth

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresence_DisabledIsNoop(t *testing.T) {
	ctx := context.Background()
	for _, p := range []*Presence{nil, NewPresence(nil)} {
		assert.NoError(t, p.Touch(ctx, 1))
		assert.NoError(t, p.Clear(ctx, 1))
		n, err := p.OnlineCount(ctx)
		assert.NoError(t, err)
		assert.Zero(t, n)
	}
}

// Only runs against a real Redis when TEST_REDIS_ADDR is set.
func TestPresence_TouchCountClear(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run real redis test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx := context.Background()
	require.NoError(t, rdb.FlushDB(ctx).Err())
	t.Cleanup(func() { rdb.FlushDB(ctx); rdb.Close() })

	p := NewPresence(rdb)
	require.NoError(t, p.Touch(ctx, 1))
	require.NoError(t, p.Touch(ctx, 2))
	require.NoError(t, p.Touch(ctx, 2))

	n, err := p.OnlineCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ttl, err := rdb.TTL(ctx, "presence:1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl.Seconds(), 0.0)

	require.NoError(t, p.Clear(ctx, 1))
	n, err = p.OnlineCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
