package mail

import (
	"context"
	"errors"

	"github.com/Apurer/pan-logistics-api/internal/domains/notifications/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/notifications/ports"
	platformmail "github.com/Apurer/pan-logistics-api/internal/platform/mail"
)

var _ ports.Mailer = (*Mailer)(nil)

// Mailer adapts a platform mail sender to the notifications port.
type Mailer struct {
	sender platformmail.Sender
}

// NewMailer wraps sender.
func NewMailer(sender platformmail.Sender) *Mailer {
	return &Mailer{sender: sender}
}

// Send converts the rendered email and delivers it.
func (m *Mailer) Send(ctx context.Context, email domain.Email) error {
	if m == nil || m.sender == nil {
		return errors.New("mailer not configured")
	}
	return m.sender.Send(ctx, platformmail.Message{
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTML,
		Text:    email.Text,
	})
}
