// Package notify sends transactional email. Delivery failures on
// best-effort paths are logged and swallowed; they never roll back the
// action that triggered them.
package notify

import (
	"context"
	"log/slog"
)

type Attachment struct {
	Name        string
	ContentType string
	Content     []byte
}

type Message struct {
	To         []string
	Subject    string
	Body       string
	Attachment *Attachment
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Outcome records whether a best-effort send went through. It is returned
// instead of an error so callers cannot accidentally propagate the failure.
type Outcome struct {
	Sent bool
	Err  error
}

type BestEffortMailer struct {
	mailer Mailer
	logger *slog.Logger
}

func NewBestEffort(mailer Mailer, logger *slog.Logger) *BestEffortMailer {
	return &BestEffortMailer{mailer: mailer, logger: logger}
}

func (b *BestEffortMailer) Send(ctx context.Context, msg Message) Outcome {
	if err := b.mailer.Send(ctx, msg); err != nil {
		b.logger.Error("failed to send notification", "error", err, "subject", msg.Subject)
		return Outcome{Err: err}
	}

	b.logger.Info("notification sent", "subject", msg.Subject, "recipients", len(msg.To))
	return Outcome{Sent: true}
}
