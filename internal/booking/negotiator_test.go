package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgods/clinic-scheduling-assistant/internal/calendar"
	redisclient "github.com/hackgods/clinic-scheduling-assistant/internal/redis"
)

func newTestNegotiator(t *testing.T, slots ...calendar.Slot) (*Negotiator, *calendar.MemoryStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := calendar.NewMemoryStore(slots...)
	locker := redisclient.NewRedisSlotLocker(client, 5*time.Second)
	return NewNegotiator(store, locker, 3, zerolog.Nop()), store
}

func TestReserveBooksOpenSlot(t *testing.T) {
	n, _ := newTestNegotiator(t,
		calendar.Slot{Date: "2025-09-11", Time: "10:00", Available: true},
	)

	out, err := n.Reserve(context.Background(), "2025-09-11", "10:00", 60)
	require.NoError(t, err)

	assert.Equal(t, StatusBooked, out.Status)
	assert.Equal(t, "2025-09-11", out.Date)
	assert.Equal(t, "10:00", out.Time)
}

func TestReserveConflictSuggestsInCalendarOrder(t *testing.T) {
	n, _ := newTestNegotiator(t,
		calendar.Slot{Date: "2025-09-11", Time: "10:00", Available: false},
		calendar.Slot{Date: "2025-09-11", Time: "11:00", Available: true},
		calendar.Slot{Date: "2025-09-12", Time: "09:00", Available: true},
		calendar.Slot{Date: "2025-09-12", Time: "10:00", Available: true},
		calendar.Slot{Date: "2025-09-12", Time: "11:00", Available: true},
	)

	out, err := n.Reserve(context.Background(), "2025-09-11", "10:00", 30)
	require.NoError(t, err)

	assert.Equal(t, StatusConflict, out.Status)
	require.Len(t, out.Suggestions, 3)
	assert.Equal(t, "11:00", out.Suggestions[0].Time)
	assert.Equal(t, "2025-09-12", out.Suggestions[1].Date)
	assert.Equal(t, "09:00", out.Suggestions[1].Time)
	assert.Equal(t, "10:00", out.Suggestions[2].Time)
}

func TestReserveSecondAttemptAlwaysConflicts(t *testing.T) {
	n, _ := newTestNegotiator(t,
		calendar.Slot{Date: "2025-09-11", Time: "10:00", Available: true},
		calendar.Slot{Date: "2025-09-11", Time: "11:00", Available: true},
	)

	out, err := n.Reserve(context.Background(), "2025-09-11", "10:00", 60)
	require.NoError(t, err)
	require.Equal(t, StatusBooked, out.Status)

	out, err = n.Reserve(context.Background(), "2025-09-11", "10:00", 60)
	require.NoError(t, err)
	assert.Equal(t, StatusConflict, out.Status)
}

func TestReserveStarvation(t *testing.T) {
	n, _ := newTestNegotiator(t,
		calendar.Slot{Date: "2025-09-11", Time: "10:00", Available: false},
	)

	out, err := n.Reserve(context.Background(), "2025-09-11", "10:00", 60)
	require.NoError(t, err)

	assert.Equal(t, StatusNoSlots, out.Status)
	assert.Empty(t, out.Suggestions)
}

func TestReserveAtMostOneWinner(t *testing.T) {
	n, _ := newTestNegotiator(t,
		calendar.Slot{Date: "2025-09-11", Time: "10:00", Available: true},
		calendar.Slot{Date: "2025-09-11", Time: "11:00", Available: true},
	)

	const attempts = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	booked := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := n.Reserve(context.Background(), "2025-09-11", "10:00", 60)
			if err != nil {
				return
			}
			if out.Status == StatusBooked {
				mu.Lock()
				booked++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, booked)
}

type failingStore struct{}

func (failingStore) ListAvailable(ctx context.Context, limit int) ([]calendar.Slot, error) {
	return nil, errors.New("calendar unreachable")
}

func (failingStore) TryReserve(ctx context.Context, date, tm string) (bool, error) {
	return false, errors.New("calendar unreachable")
}

func TestReserveStoreFailureIsAnErrorNotAConflict(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	locker := redisclient.NewRedisSlotLocker(client, 5*time.Second)
	n := NewNegotiator(failingStore{}, locker, 3, zerolog.Nop())

	_, err := n.Reserve(context.Background(), "2025-09-11", "10:00", 60)
	require.Error(t, err)
}
