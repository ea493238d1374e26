package mailer

import (
	"context"

	"github.com/rs/zerolog"
)

// Mailer delivers a message to a set of recipients. Actual transport (SMTP,
// a hosted API) lives outside this system; the notification worker only
// depends on this contract.
type Mailer interface {
	Send(ctx context.Context, recipients []string, subject, body string) error
}

// LogMailer writes deliveries to the log instead of sending anything.
// Used in development and wherever no real transport is configured.
type LogMailer struct {
	log zerolog.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log.With().Str("component", "mailer").Logger()}
}

// Send implements Mailer.
func (m *LogMailer) Send(_ context.Context, recipients []string, subject, _ string) error {
	m.log.Info().
		Int("recipients", len(recipients)).
		Str("subject", subject).
		Msg("Mail delivery (log only)")
	return nil
}
