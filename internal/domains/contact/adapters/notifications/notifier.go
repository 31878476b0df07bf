package notifications

import (
	"context"

	"github.com/Apurer/pan-logistics-api/internal/domains/contact/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/contact/ports"
	notificationdomain "github.com/Apurer/pan-logistics-api/internal/domains/notifications/domain"
	notificationports "github.com/Apurer/pan-logistics-api/internal/domains/notifications/ports"
)

// Notifier hands contact receipts to the notification dispatcher.
type Notifier struct {
	dispatcher notificationports.Dispatcher
}

func NewNotifier(dispatcher notificationports.Dispatcher) *Notifier {
	return &Notifier{dispatcher: dispatcher}
}

func (n *Notifier) MessageReceived(ctx context.Context, message domain.Message) error {
	return n.dispatcher.Dispatch(ctx, notificationdomain.Notification{
		Kind: notificationdomain.KindContactConfirmation,
		To:   message.Email,
		Inquiry: &notificationdomain.Inquiry{
			Name:    message.Name,
			Subject: message.Subject,
		},
	})
}

var _ ports.Notifier = (*Notifier)(nil)
