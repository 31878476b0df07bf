package ports

import (
	"context"

	contacttypes "github.com/Apurer/pan-logistics-api/internal/domains/contact/application/types"
	"github.com/Apurer/pan-logistics-api/internal/domains/contact/domain"
	"github.com/Apurer/pan-logistics-api/internal/shared/projection"
)

// Service defines the contact message use cases exposed to adapters.
type Service interface {
	Submit(ctx context.Context, input contacttypes.SubmitMessageInput) (*domain.Message, error)
	List(ctx context.Context, query contacttypes.ListMessagesQuery) (projection.Page[*domain.Message], error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkAsRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Notifier sends the submitter a receipt. Failures are logged by the caller.
type Notifier interface {
	MessageReceived(ctx context.Context, message domain.Message) error
}
