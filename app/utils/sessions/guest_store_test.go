package sessions

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuestStore(t *testing.T) (*RedisGuestStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisGuestStore(client, 24*time.Hour), mr
}

func TestTouchRecordsLastSeenWithTTL(t *testing.T) {
	store, mr := newTestGuestStore(t)

	require.NoError(t, store.Touch(context.Background(), "abc"))

	raw, err := mr.Get("guest_session:abc")
	require.NoError(t, err)

	lastSeen, err := strconv.ParseInt(raw, 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Unix(), lastSeen, 5)

	ttl := mr.TTL("guest_session:abc")
	assert.Greater(t, ttl, 23*time.Hour)
}

func TestTouchEmptySessionIsNoOp(t *testing.T) {
	store, mr := newTestGuestStore(t)

	require.NoError(t, store.Touch(context.Background(), ""))
	assert.Empty(t, mr.Keys())
}

func TestDeleteRemovesRecord(t *testing.T) {
	store, mr := newTestGuestStore(t)

	require.NoError(t, store.Touch(context.Background(), "abc"))
	require.NoError(t, store.Delete(context.Background(), "abc"))
	assert.False(t, mr.Exists("guest_session:abc"))
}

func TestCleanupRemovesOnlyStaleSessions(t *testing.T) {
	store, mr := newTestGuestStore(t)

	stale := strconv.FormatInt(time.Now().Add(-25*time.Hour).Unix(), 10)
	require.NoError(t, mr.Set("guest_session:stale", stale))
	require.NoError(t, store.Touch(context.Background(), "fresh"))
	require.NoError(t, mr.Set("unrelated:key", "1"))

	removed, err := store.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.False(t, mr.Exists("guest_session:stale"))
	assert.True(t, mr.Exists("guest_session:fresh"))
	assert.True(t, mr.Exists("unrelated:key"))
}

func TestCleanupDropsUnparsableRecords(t *testing.T) {
	store, mr := newTestGuestStore(t)

	require.NoError(t, mr.Set("guest_session:garbage", "not-a-timestamp"))

	removed, err := store.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.False(t, mr.Exists("guest_session:garbage"))
}
