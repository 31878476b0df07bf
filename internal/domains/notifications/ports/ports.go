package ports

import (
	"context"

	"github.com/Apurer/pan-logistics-api/internal/domains/notifications/domain"
)

// Mailer delivers rendered emails.
type Mailer interface {
	Send(ctx context.Context, email domain.Email) error
}

// Service renders and sends a single notification synchronously.
type Service interface {
	Send(ctx context.Context, notification domain.Notification) error
}

// Dispatcher hands a notification off for delivery without waiting for it.
// Returned errors only describe the hand-off.
type Dispatcher interface {
	Dispatch(ctx context.Context, notification domain.Notification) error
}
