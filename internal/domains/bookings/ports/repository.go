package ports

import (
	"context"
	"errors"

	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
	"github.com/Apurer/pan-logistics-api/internal/shared/projection"
)

var (
	ErrNotFound = errors.New("booking not found")
	// ErrDuplicateTrackingNumber is returned by Create when the tracking
	// number is already taken.
	ErrDuplicateTrackingNumber = errors.New("tracking number already exists")
)

// ListFilter narrows a booking listing.
type ListFilter struct {
	Status domain.Status
	// Search matches tracking number, sender name or receiver name,
	// case-insensitively.
	Search string
	Page   projection.PageRequest
}

// Repository is the bookings persistence port.
type Repository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Save(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	// List returns bookings ordered by created_at descending.
	List(ctx context.Context, filter ListFilter) (projection.Page[*domain.Booking], error)
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
}
