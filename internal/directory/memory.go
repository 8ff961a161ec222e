package directory

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepository is an in-process directory used by the demo server
// when no database is configured, and by tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []PatientRecord
}

func NewMemoryRepository(records ...PatientRecord) *MemoryRepository {
	return &MemoryRepository{records: records}
}

func (r *MemoryRepository) FindByName(ctx context.Context, name string) (*PatientRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.records {
		if strings.EqualFold(r.records[i].Name, name) {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, ErrPatientNotFound
}

func (r *MemoryRepository) Add(rec PatientRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}
