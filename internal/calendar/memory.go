package calendar

import (
	"context"
	"sync"
)

// MemoryStore keeps the schedule in calendar order in memory, guarded
// by a mutex so TryReserve stays a single indivisible check-then-flip.
// Used by the demo server without Postgres and by tests.
type MemoryStore struct {
	mu    sync.Mutex
	slots []Slot
}

func NewMemoryStore(slots ...Slot) *MemoryStore {
	return &MemoryStore{slots: slots}
}

func (s *MemoryStore) ListAvailable(ctx context.Context, limit int) ([]Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []Slot
	for _, slot := range s.slots {
		if !slot.Available {
			continue
		}
		result = append(result, slot)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (s *MemoryStore) TryReserve(ctx context.Context, date, tm string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.slots {
		if s.slots[i].Date == date && s.slots[i].Time == tm && s.slots[i].Available {
			s.slots[i].Available = false
			return true, nil
		}
	}
	return false, nil
}
