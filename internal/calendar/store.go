package calendar

import "context"

// Slot is one bookable unit of the doctor's schedule. The demo calendar
// is hourly, 09:00-16:00, but nothing here assumes the granularity.
type Slot struct {
	Date      string // YYYY-MM-DD
	Time      string // HH:MM, 24-hour
	Available bool
}

// Key identifies a slot for locking and logging, "date|time".
func Key(date, tm string) string {
	return date + "|" + tm
}

// Store is the availability calendar shared by all booking sessions.
type Store interface {
	// ListAvailable returns up to limit open slots in calendar order.
	ListAvailable(ctx context.Context, limit int) ([]Slot, error)

	// TryReserve flips (date, time) from available to booked.
	// It returns false when the slot does not exist or is already
	// booked; the flip itself is atomic, so the same slot can never
	// be reserved twice.
	TryReserve(ctx context.Context, date, tm string) (bool, error)
}
