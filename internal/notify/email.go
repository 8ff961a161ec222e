package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// EmailSender is the outbound mail transport. Implementations can be
// swapped (SES, stub) without touching the dispatcher.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage is one email to be sent.
type EmailMessage struct {
	To             string
	ToName         string
	Subject        string
	Body           string
	AttachmentPath string // optional, confirmation email only
}

// StubSender logs instead of sending. Used in dev when SES is not
// configured, and by tests to capture outbound mail.
type StubSender struct {
	logger zerolog.Logger

	mu   sync.Mutex
	sent []EmailMessage
}

func NewStubSender(logger zerolog.Logger) *StubSender {
	return &StubSender{logger: logger}
}

func (s *StubSender) Send(ctx context.Context, msg EmailMessage) error {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()

	s.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("stub email sender: not delivering")
	return nil
}

func (s *StubSender) Sent() []EmailMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EmailMessage, len(s.sent))
	copy(out, s.sent)
	return out
}
