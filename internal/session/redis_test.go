package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk-backend/internal/types"
)

func setupMiniRedis(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: mr.Addr()}, ttl)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return mr, c
}

func TestRedisCacheRoundTrip(t *testing.T) {
	mr, c := setupMiniRedis(t, 10*time.Minute)
	ctx := context.Background()

	st := types.SessionState{
		State:         types.StateIntentFlow,
		CurrentIntent: types.IntentEscalate,
		SubState:      types.SubStateWaitingForInput,
	}
	require.NoError(t, c.Save(ctx, "s1", st))
	assert.True(t, mr.Exists(redisKeyPrefix+"s1"))
	assert.Equal(t, 10*time.Minute, mr.TTL(redisKeyPrefix+"s1"))

	got, err := c.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, st, *got)

	require.NoError(t, c.Delete(ctx, "s1"))
	got, err = c.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCacheExpiry(t *testing.T) {
	mr, c := setupMiniRedis(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "s1", types.NewSessionState()))
	mr.FastForward(2 * time.Minute)

	got, err := c.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCacheCorruptEntryIsMiss(t *testing.T) {
	mr, c := setupMiniRedis(t, time.Minute)
	require.NoError(t, mr.Set(redisKeyPrefix+"s1", "{not json"))

	got, err := c.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists(redisKeyPrefix+"s1"))
}

func TestRedisCacheUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(context.Background(), RedisConfig{Addr: addr}, time.Minute)
	assert.Error(t, err)
}

func TestRedisCacheLoadError(t *testing.T) {
	mr, c := setupMiniRedis(t, time.Minute)
	mr.Close()

	_, err := c.Load(context.Background(), "s1")
	assert.Error(t, err)
}
