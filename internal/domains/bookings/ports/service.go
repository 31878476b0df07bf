package ports

import (
	"context"

	bookingtypes "github.com/Apurer/pan-logistics-api/internal/domains/bookings/application/types"
	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
	"github.com/Apurer/pan-logistics-api/internal/shared/projection"
)

// Service defines the booking use cases exposed to adapters.
type Service interface {
	Create(ctx context.Context, input bookingtypes.CreateBookingInput) (*domain.Booking, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, query bookingtypes.ListBookingsQuery) (projection.Page[*domain.Booking], error)
	Statistics(ctx context.Context) (domain.Statistics, error)
	UpdateStatus(ctx context.Context, id string, status string) (*domain.Booking, error)
	Update(ctx context.Context, id string, input bookingtypes.UpdateBookingInput) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}
