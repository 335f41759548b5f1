package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLock(t *testing.T, opts Options) (*RoomLock, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRoomLock(client, opts), mr
}

func TestRoomLock_ExclusivePerRoom(t *testing.T) {
	l, _ := newTestLock(t, Options{TTL: time.Minute, Wait: 0})
	ctx := context.Background()

	release, err := l.Acquire(ctx, "room-a")
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "room-a")
	assert.ErrorIs(t, err, ErrLockNotAcquired)

	releaseB, err := l.Acquire(ctx, "room-b")
	require.NoError(t, err, "other rooms are not blocked")
	require.NoError(t, releaseB(ctx))

	require.NoError(t, release(ctx))

	again, err := l.Acquire(ctx, "room-a")
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestRoomLock_WaitsForRelease(t *testing.T) {
	l, _ := newTestLock(t, Options{TTL: time.Minute, Wait: 2 * time.Second, RetryBackoff: 10 * time.Millisecond})
	ctx := context.Background()

	release, err := l.Acquire(ctx, "room-a")
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = release(ctx)
	}()

	second, err := l.Acquire(ctx, "room-a")
	require.NoError(t, err)
	require.NoError(t, second(ctx))
}

func TestRoomLock_ReleaseOnlyByOwner(t *testing.T) {
	l, mr := newTestLock(t, Options{TTL: time.Second, Wait: 0})
	ctx := context.Background()

	staleRelease, err := l.Acquire(ctx, "room-a")
	require.NoError(t, err)

	// ключ истек, блокировку взял другой запрос
	mr.FastForward(2 * time.Second)
	release, err := l.Acquire(ctx, "room-a")
	require.NoError(t, err)

	require.NoError(t, staleRelease(ctx))
	assert.True(t, mr.Exists(DefaultKeyPrefix+":room-a"), "stale owner must not delete a foreign lock")

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists(DefaultKeyPrefix+":room-a"))
}

func TestRoomLock_ContextCancelled(t *testing.T) {
	l, _ := newTestLock(t, Options{TTL: time.Minute, Wait: time.Minute})

	release, err := l.Acquire(context.Background(), "room-a")
	require.NoError(t, err)
	defer func() { _ = release(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = l.Acquire(ctx, "room-a")
	assert.ErrorIs(t, err, ErrLockNotAcquired)
}

func TestRoomLock_RedisDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	l := NewRoomLock(client, Options{})

	_, err := l.Acquire(context.Background(), "room-a")
	assert.ErrorIs(t, err, ErrRedis)
}

func TestNopLock(t *testing.T) {
	release, err := NopLock{}.Acquire(context.Background(), "room-a")
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}
