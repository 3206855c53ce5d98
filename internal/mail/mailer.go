package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/justjoin/justjoin-backend/internal/config"
)

// Message is a single outbound email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends email. All sends in this service are best-effort: callers
// log failures and never roll back the primary operation.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer selects the SMTP mailer when a host is configured, otherwise
// a no-op mailer that only logs.
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) Mailer {
	if cfg.Host == "" {
		logger.Info("SMTP not configured, using noop mailer")
		return &noopMailer{logger: logger}
	}
	return NewSMTPMailer(cfg)
}

type noopMailer struct {
	logger *zap.Logger
}

func (m *noopMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("email suppressed (noop mailer)",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
