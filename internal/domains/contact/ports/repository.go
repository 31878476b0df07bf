package ports

import (
	"context"
	"errors"

	"github.com/Apurer/pan-logistics-api/internal/domains/contact/domain"
	"github.com/Apurer/pan-logistics-api/internal/shared/projection"
)

var ErrNotFound = errors.New("message not found")

// ListFilter narrows a message listing.
type ListFilter struct {
	UnreadOnly bool
	Page       projection.PageRequest
}

// Repository is the contact message persistence port.
type Repository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	// List returns messages ordered by created_at descending.
	List(ctx context.Context, filter ListFilter) (projection.Page[*domain.Message], error)
	CountUnread(ctx context.Context) (int64, error)
	MarkAsRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
