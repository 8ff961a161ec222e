package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hackgods/clinic-scheduling-assistant/internal/calendar"
	redisclient "github.com/hackgods/clinic-scheduling-assistant/internal/redis"
)

type Status string

const (
	// StatusBooked means the requested slot was flipped to unavailable.
	StatusBooked Status = "booked"
	// StatusConflict means the slot was taken; Suggestions carries
	// up to maxSuggestions alternatives in calendar order.
	StatusConflict Status = "conflict"
	// StatusNoSlots means the whole calendar is booked out.
	StatusNoSlots Status = "no_slots"
)

// Outcome is the result of one negotiation attempt. Store failures are
// reported as errors, never as a conflict, so the conversation can tell
// "slot taken" apart from "calendar unreachable".
type Outcome struct {
	Status      Status
	Date        string
	Time        string
	Suggestions []calendar.Slot
}

// Negotiator commits slot reservations against the shared calendar.
// The per-slot lock plus the store's atomic flip guarantee at most one
// success per slot under concurrent attempts.
type Negotiator struct {
	store          calendar.Store
	locker         redisclient.Locker
	maxSuggestions int
	logger         zerolog.Logger
}

func NewNegotiator(store calendar.Store, locker redisclient.Locker, maxSuggestions int, logger zerolog.Logger) *Negotiator {
	if maxSuggestions < 1 {
		maxSuggestions = 3
	}
	return &Negotiator{
		store:          store,
		locker:         locker,
		maxSuggestions: maxSuggestions,
		logger:         logger,
	}
}

// Reserve attempts to book (date, tm). Duration is carried for the log
// entry only; reservations are single-slot.
func (n *Negotiator) Reserve(ctx context.Context, date, tm string, durationMinutes int) (Outcome, error) {
	var reserved bool

	err := n.locker.WithSlotLock(ctx, calendar.Key(date, tm), func(lockCtx context.Context) error {
		ok, err := n.store.TryReserve(lockCtx, date, tm)
		if err != nil {
			return fmt.Errorf("try reserve: %w", err)
		}
		reserved = ok
		return nil
	})

	switch {
	case errors.Is(err, redisclient.ErrLockNotAcquired):
		// Another session is mid-booking on this slot; treat it as
		// taken and offer alternatives.
		n.logger.Debug().Str("slot", calendar.Key(date, tm)).Msg("slot lock contended")
	case err != nil:
		return Outcome{}, err
	}

	if reserved {
		n.logger.Info().
			Str("date", date).
			Str("time", tm).
			Int("duration_minutes", durationMinutes).
			Msg("slot reserved")
		return Outcome{Status: StatusBooked, Date: date, Time: tm}, nil
	}

	suggestions, err := n.store.ListAvailable(ctx, n.maxSuggestions)
	if err != nil {
		return Outcome{}, fmt.Errorf("list alternatives: %w", err)
	}

	if len(suggestions) == 0 {
		return Outcome{Status: StatusNoSlots, Date: date, Time: tm}, nil
	}

	return Outcome{
		Status:      StatusConflict,
		Date:        date,
		Time:        tm,
		Suggestions: suggestions,
	}, nil
}
