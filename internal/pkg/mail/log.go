package mail

import (
	"context"
	"log/slog"
)

// Log is a Mail that writes messages to slog instead of delivering them.
type Log struct {
	from string
}

func NewLog(from string) *Log { return &Log{from: from} }

func (l *Log) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.recipients()) == 0 {
		return ErrNoRecipients
	}

	from := msg.From
	if from == "" {
		from = l.from
	}

	slog.InfoContext(ctx, "mail not delivered, log driver in use",
		"from", from,
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.TextBody,
	)
	return nil
}

func (l *Log) Close() error { return nil }
