package application

import (
	"context"
	"errors"
	"strings"

	bookings "github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
	bookingports "github.com/Apurer/pan-logistics-api/internal/domains/bookings/ports"
	"github.com/Apurer/pan-logistics-api/internal/domains/tracking/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/tracking/ports"
)

// Service projects bookings into public tracking views.
type Service struct {
	bookings ports.BookingReader
}

// NewService wires the booking reader.
func NewService(reader ports.BookingReader) *Service {
	return &Service{bookings: reader}
}

// Track returns the tracking view for trackingNumber.
func (s *Service) Track(ctx context.Context, trackingNumber string) (*domain.View, error) {
	booking, err := s.lookup(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	view := domain.NewView(*booking)
	return &view, nil
}

// Validate checks the format first and only then looks the number up.
func (s *Service) Validate(ctx context.Context, trackingNumber string) (domain.Validation, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if !domain.ValidTrackingFormat(trackingNumber) {
		return domain.Validation{Message: domain.MessageInvalidFormat}, nil
	}
	_, err := s.lookup(ctx, trackingNumber)
	switch {
	case err == nil:
		return domain.Validation{Valid: true, Exists: true, Message: domain.MessageFound}, nil
	case errors.Is(err, ports.ErrShipmentNotFound):
		return domain.Validation{Valid: true, Message: domain.MessageNotFound}, nil
	default:
		return domain.Validation{}, err
	}
}

func (s *Service) lookup(ctx context.Context, trackingNumber string) (*bookings.Booking, error) {
	normalized := bookings.NormalizeTrackingNumber(trackingNumber)
	if normalized == "" {
		return nil, ports.ErrShipmentNotFound
	}
	booking, err := s.bookings.GetByTrackingNumber(ctx, normalized)
	if errors.Is(err, bookingports.ErrNotFound) {
		return nil, ports.ErrShipmentNotFound
	}
	return booking, err
}

var _ ports.Service = (*Service)(nil)
