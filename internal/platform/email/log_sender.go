package email

import (
	"context"
	"log/slog"
)

// LogSender records notifications in the log instead of sending them.
// It is used when no SendGrid API key is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender. A nil logger uses slog.Default.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) SendWelcome(ctx context.Context, to, name string) error {
	s.log(ctx, to, welcomeMessage(name))
	return nil
}

func (s *LogSender) SendCancellation(ctx context.Context, to, name string) error {
	s.log(ctx, to, cancellationMessage(name))
	return nil
}

func (s *LogSender) log(ctx context.Context, to string, msg message) {
	s.logger.InfoContext(ctx, "email not sent: no provider configured", "to", to, "subject", msg.subject)
}
