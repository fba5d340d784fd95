package booking

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redisForTest connects to REDIS_TEST_ADDR and skips when it is unset or down.
func redisForTest(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisSubmitLock_ReleaseKeepsLaterOwner(t *testing.T) {
	client := redisForTest(t)
	ctx := context.Background()
	store := NewRedisSessionStore(client, time.Minute, time.Minute)
	sessionID := uuid.NewString()
	key := submitKeyPrefix + sessionID
	t.Cleanup(func() { client.Del(ctx, key) })

	stale, ok, err := store.AcquireSubmitLock(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = store.AcquireSubmitLock(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, ok)

	// the first lock expired and a later submit took it over
	require.NoError(t, client.Set(ctx, key, "later", time.Minute).Err())
	require.NoError(t, store.ReleaseSubmitLock(ctx, sessionID, stale))
	assert.Equal(t, "later", client.Get(ctx, key).Val())

	require.NoError(t, store.ReleaseSubmitLock(ctx, sessionID, "later"))
	assert.Zero(t, client.Exists(ctx, key).Val())
}
