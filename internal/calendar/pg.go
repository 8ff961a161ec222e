package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the slice of pgxpool.Pool the store needs; tests hand in a
// pgxmock pool instead.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PgStore struct {
	db Querier
}

func NewPgStore(db Querier) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) ListAvailable(ctx context.Context, limit int) ([]Slot, error) {
	rows, err := s.db.Query(ctx, `
		SELECT slot_date, slot_time
		FROM schedule_slots
		WHERE is_available
		ORDER BY slot_date, slot_time
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	defer rows.Close()

	var result []Slot
	for rows.Next() {
		var date time.Time
		var tm string
		if err := rows.Scan(&date, &tm); err != nil {
			return nil, err
		}
		result = append(result, Slot{
			Date:      date.Format("2006-01-02"),
			Time:      tm,
			Available: true,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *PgStore) TryReserve(ctx context.Context, date, tm string) (bool, error) {
	// Conditional update: the WHERE clause makes the check and the
	// flip one statement, so a lost race shows up as zero rows.
	tag, err := s.db.Exec(ctx, `
		UPDATE schedule_slots
		SET is_available = FALSE
		WHERE slot_date = $1
		  AND slot_time = $2
		  AND is_available
	`, date, tm)
	if err != nil {
		return false, fmt.Errorf("reserve slot: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
