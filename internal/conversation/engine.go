package conversation

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hackgods/clinic-scheduling-assistant/internal/booking"
)

// BookingConfirmed is emitted once per committed booking and consumed
// by the notification dispatcher. Delivery is fire-and-forget: nothing
// downstream can unwind the booking.
type BookingConfirmed struct {
	Name            string
	Email           string
	PatientType     string
	AppointmentDate string
	AppointmentTime string
	DurationMinutes int
}

// Publisher hands confirmed bookings to the outbound side.
type Publisher interface {
	BookingConfirmed(evt BookingConfirmed)
}

// Engine is the conversation state machine. It owns every Context
// mutation: handlers parse under the current stage's rules, fold
// component results in, and append the next assistant message.
type Engine struct {
	classifier *Classifier
	negotiator *booking.Negotiator
	log        booking.LogRepository
	publisher  Publisher
	logger     zerolog.Logger
}

func NewEngine(classifier *Classifier, negotiator *booking.Negotiator, log booking.LogRepository, publisher Publisher, logger zerolog.Logger) *Engine {
	return &Engine{
		classifier: classifier,
		negotiator: negotiator,
		log:        log,
		publisher:  publisher,
		logger:     logger,
	}
}

// HandleTurn folds one raw user turn into the session. It appends the
// user message and the assistant's reply (two messages on the booking
// turn: the scheduling result and the confirmation); rejected or failed
// turns keep the current stage.
func (e *Engine) HandleTurn(ctx context.Context, convo *Context, raw string) {
	convo.append(RoleUser, raw)

	switch convo.Stage {
	case StageLookup:
		e.handleLookup(ctx, convo, raw)
	case StageScheduling:
		e.handleScheduling(ctx, convo, raw)
	case StageConfirmed:
		convo.append(RoleAssistant, msgAlreadyBooked)
	default:
		e.logger.Error().Str("stage", string(convo.Stage)).Msg("session in unknown stage")
		convo.append(RoleAssistant, msgLookupHint)
	}
}

func (e *Engine) handleLookup(ctx context.Context, convo *Context, raw string) {
	input, rej := ParseLookup(raw)
	if rej != nil {
		convo.append(RoleAssistant, rej.Hint)
		return
	}

	cls := e.classifier.Classify(ctx, input.Name)

	convo.Name = input.Name
	convo.DateOfBirth = input.DateOfBirth
	convo.PatientType = cls.PatientType
	convo.AppointmentDuration = cls.DurationMinutes
	convo.Stage = StageScheduling

	convo.append(RoleAssistant, classificationMessage(input.Name, cls.PatientType, cls.DurationMinutes, cls.Known))
}

func (e *Engine) handleScheduling(ctx context.Context, convo *Context, raw string) {
	input, rej := ParseScheduling(raw)
	if rej != nil {
		convo.append(RoleAssistant, rej.Hint)
		return
	}

	convo.Email = input.Email

	outcome, err := e.negotiator.Reserve(ctx, input.Date, input.Time, convo.AppointmentDuration)
	if err != nil {
		// Calendar unreachable is not a conflict: no suggestions,
		// and the user is told to retry rather than pick another slot.
		e.logger.Error().Err(err).Msg("slot negotiation failed")
		convo.append(RoleAssistant, msgCalendarDown)
		return
	}

	switch outcome.Status {
	case booking.StatusBooked:
		convo.AppointmentDate = outcome.Date
		convo.AppointmentTime = outcome.Time
		convo.IsBooked = true
		convo.append(RoleAssistant, scheduledMessage(outcome.Date, outcome.Time))
		e.confirm(ctx, convo)
	case booking.StatusConflict:
		convo.append(RoleAssistant, suggestionsMessage(outcome.Suggestions))
	case booking.StatusNoSlots:
		convo.append(RoleAssistant, msgNoSlots)
	}
}

// confirm runs the terminal transition: one log entry, one outbound
// event, one closing message. The booking is already committed when we
// get here, so failures are logged and never shown to the user.
func (e *Engine) confirm(ctx context.Context, convo *Context) {
	convo.Stage = StageConfirmed

	entry := booking.LogEntry{
		Name:            convo.Name,
		PatientType:     string(convo.PatientType),
		AppointmentDate: convo.AppointmentDate,
		AppointmentTime: convo.AppointmentTime,
		DurationMinutes: convo.AppointmentDuration,
		Email:           convo.Email,
	}
	if err := e.log.Append(ctx, entry); err != nil {
		e.logger.Error().Err(err).Str("name", convo.Name).Msg("appointment log write failed")
	}

	if e.publisher != nil {
		e.publisher.BookingConfirmed(BookingConfirmed{
			Name:            convo.Name,
			Email:           convo.Email,
			PatientType:     string(convo.PatientType),
			AppointmentDate: convo.AppointmentDate,
			AppointmentTime: convo.AppointmentTime,
			DurationMinutes: convo.AppointmentDuration,
		})
	}

	convo.append(RoleAssistant, confirmedMessage(convo.Name))
}
