package relay

import (
	"context"
	"log/slog"
	"unicode/utf8"
)

// Log is the development relay. It accepts every message and logs it.
// The access token and the message body are never logged.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (l *Log) Name() string {
	return "log"
}

func (l *Log) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.logger.InfoContext(ctx, "contact submission (dev mode)",
		"service_id", msg.ServiceID,
		"template_id", msg.TemplateID,
		"name", msg.Params.Name,
		"email", msg.Params.Email,
		"message_length", utf8.RuneCountInString(msg.Params.Message),
	)
	return nil
}
