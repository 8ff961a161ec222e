package redisclient

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (Locker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisSlotLocker(client, 5*time.Second), mr
}

func TestWithSlotLockRunsCriticalSection(t *testing.T) {
	locker, _ := newTestLocker(t)

	ran := false
	err := locker.WithSlotLock(context.Background(), "2025-09-11|10:00", func(ctx context.Context) error {
		ran = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
}

func TestWithSlotLockReleasesAfterwards(t *testing.T) {
	locker, mr := newTestLocker(t)

	err := locker.WithSlotLock(context.Background(), "2025-09-11|10:00", func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)

	assert.False(t, mr.Exists("lock:slot:2025-09-11|10:00"))
}

func TestWithSlotLockContendedSameSlot(t *testing.T) {
	locker, _ := newTestLocker(t)

	err := locker.WithSlotLock(context.Background(), "2025-09-11|10:00", func(ctx context.Context) error {
		inner := locker.WithSlotLock(ctx, "2025-09-11|10:00", func(ctx context.Context) error {
			t.Fatal("second holder must not enter the critical section")
			return nil
		})
		assert.ErrorIs(t, inner, ErrLockNotAcquired)
		return nil
	})

	require.NoError(t, err)
}

func TestWithSlotLockDifferentSlotsDoNotContend(t *testing.T) {
	locker, _ := newTestLocker(t)

	err := locker.WithSlotLock(context.Background(), "2025-09-11|10:00", func(ctx context.Context) error {
		return locker.WithSlotLock(ctx, "2025-09-11|11:00", func(ctx context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
}
