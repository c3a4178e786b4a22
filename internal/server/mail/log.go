package mail

import (
	"context"

	"github.com/orionapp/companion/internal/logging"
)

// LogSender writes messages to the log instead of delivering them. Used in
// dev mode when no SMTP relay is configured.
type LogSender struct {
	logger logging.Logger
}

func NewLogSender(logger logging.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info(ctx, "outbound email (not delivered)",
		"to", msg.To, "subject", msg.Subject, "body", msg.Body)
	return nil
}
