package ports

import (
	"context"
	"errors"

	bookings "github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/tracking/domain"
)

// ErrShipmentNotFound is returned when no booking carries the tracking number.
var ErrShipmentNotFound = errors.New("shipment not found")

// BookingReader loads bookings by tracking number.
type BookingReader interface {
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*bookings.Booking, error)
}

// Service exposes the public tracking use cases.
type Service interface {
	Track(ctx context.Context, trackingNumber string) (*domain.View, error)
	Validate(ctx context.Context, trackingNumber string) (domain.Validation, error)
}
