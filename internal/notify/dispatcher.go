package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hackgods/clinic-scheduling-assistant/internal/conversation"
)

// Dispatcher consumes BookingConfirmed events off a buffered queue and
// sends the confirmation email plus the numbered reminder sequence.
// Best effort end to end: send failures are logged for the operator and
// never reach the conversation, and a committed booking is never rolled
// back here.
type Dispatcher struct {
	sender         EmailSender
	intakeFormPath string
	logger         zerolog.Logger

	queue chan conversation.BookingConfirmed
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(sender EmailSender, queueSize int, intakeFormPath string, logger zerolog.Logger) *Dispatcher {
	if queueSize < 1 {
		queueSize = 64
	}
	return &Dispatcher{
		sender:         sender,
		intakeFormPath: intakeFormPath,
		logger:         logger,
		queue:          make(chan conversation.BookingConfirmed, queueSize),
	}
}

// BookingConfirmed enqueues an event without blocking the conversation.
// A full queue drops the event with an error log; the booking itself is
// already committed.
func (d *Dispatcher) BookingConfirmed(evt conversation.BookingConfirmed) {
	select {
	case d.queue <- evt:
	default:
		d.logger.Error().
			Str("email", evt.Email).
			Msg("notification queue full, dropping booking notifications")
	}
}

// Start launches the consumer. It drains until Stop is called.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for evt := range d.queue {
			d.dispatch(ctx, evt)
		}
	}()
}

// Stop closes the queue and waits for in-flight sends to finish.
func (d *Dispatcher) Stop() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(ctx context.Context, evt conversation.BookingConfirmed) {
	if evt.Email == "" {
		d.logger.Warn().Str("name", evt.Name).Msg("booking has no email, skipping notifications")
		return
	}

	if err := d.sender.Send(ctx, confirmationEmail(evt, d.intakeFormPath)); err != nil {
		d.logger.Error().Err(err).Str("to", evt.Email).Msg("confirmation email failed")
	}

	for i := 1; i <= ReminderCount; i++ {
		if err := d.sender.Send(ctx, reminderEmail(evt, i)); err != nil {
			d.logger.Error().Err(err).Int("reminder", i).Str("to", evt.Email).Msg("reminder email failed")
		}
	}
}
