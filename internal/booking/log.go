package booking

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
)

// LogEntry is one committed booking, written exactly once per
// successful negotiation.
type LogEntry struct {
	Name            string
	PatientType     string
	AppointmentDate string
	AppointmentTime string
	DurationMinutes int
	Email           string
}

// LogRepository is the append-only appointment log.
type LogRepository interface {
	Append(ctx context.Context, entry LogEntry) error
}

type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PgLogRepository struct {
	db Execer
}

func NewPgLogRepository(db Execer) *PgLogRepository {
	return &PgLogRepository{db: db}
}

func (r *PgLogRepository) Append(ctx context.Context, entry LogEntry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO appointment_log
			(name, patient_type, appointment_date, appointment_time, duration_minutes, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
	`, entry.Name, entry.PatientType, entry.AppointmentDate, entry.AppointmentTime, entry.DurationMinutes, entry.Email)
	if err != nil {
		return fmt.Errorf("append appointment log: %w", err)
	}
	return nil
}

// MemoryLog collects entries in memory for the demo server and tests.
type MemoryLog struct {
	mu      sync.Mutex
	entries []LogEntry
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) Append(ctx context.Context, entry LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

func (l *MemoryLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
