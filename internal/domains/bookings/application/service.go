package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	bookingtypes "github.com/Apurer/pan-logistics-api/internal/domains/bookings/application/types"
	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/ports"
	"github.com/Apurer/pan-logistics-api/internal/shared/projection"
)

// MaxTrackingNumberAttempts bounds the insert-with-retry loop in Create.
const MaxTrackingNumberAttempts = 5

// TrackingNumberSource yields tracking number candidates.
type TrackingNumberSource interface {
	Next() string
}

// Service orchestrates the booking lifecycle.
type Service struct {
	repo            ports.Repository
	events          ports.EventPublisher
	trackingNumbers TrackingNumberSource
	now             func() time.Time
	newID           func() string
	logger          *slog.Logger
}

// Option customizes the service.
type Option func(*Service)

// WithEventPublisher sets the sink for booking events.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.events = publisher
		}
	}
}

// WithTrackingNumbers overrides the tracking number source.
func WithTrackingNumbers(source TrackingNumberSource) Option {
	return func(s *Service) {
		if source != nil {
			s.trackingNumbers = source
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides booking id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithLogger sets the logger used for swallowed side-effect failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the booking service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:            repo,
		events:          ports.NoopEventPublisher,
		trackingNumbers: domain.NewTrackingNumberGenerator(),
		now:             time.Now,
		newID:           uuid.NewString,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create validates the input, assigns a unique tracking number and persists
// the booking with status Booked.
func (s *Service) Create(ctx context.Context, input bookingtypes.CreateBookingInput) (*domain.Booking, error) {
	pickup, err := domain.ParseDate(input.PickupDate)
	if err != nil {
		return nil, mapError(err)
	}
	booking := &domain.Booking{
		Sender: domain.Sender{
			Name:    input.SenderName,
			Company: input.SenderCompany,
			Phone:   input.SenderPhone,
			Email:   input.SenderEmail,
			Address: input.SenderAddress,
		},
		Receiver: domain.Receiver{
			Name:    input.ReceiverName,
			Phone:   input.ReceiverPhone,
			Address: input.ReceiverAddress,
			Country: input.ReceiverCountry,
		},
		ShipmentType:        domain.ShipmentType(strings.TrimSpace(input.ShipmentType)),
		Weight:              input.Weight,
		CargoType:           input.CargoType,
		Dimensions:          input.Dimensions,
		SpecialInstructions: input.SpecialInstructions,
		PickupDate:          pickup,
		Priority:            domain.Priority(strings.TrimSpace(input.DeliveryPriority)),
	}
	booking.Normalize()
	if err := booking.Validate(); err != nil {
		return nil, mapError(err)
	}

	now := s.now().UTC()
	booking.ID = s.newID()
	booking.Status = domain.StatusBooked
	booking.EstimatedDelivery = domain.EstimateDelivery(booking.ShipmentType, booking.Priority, now)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	for attempt := 1; attempt <= MaxTrackingNumberAttempts; attempt++ {
		booking.TrackingNumber = domain.NormalizeTrackingNumber(s.trackingNumbers.Next())
		saved, err := s.repo.Create(ctx, booking)
		if errors.Is(err, ports.ErrDuplicateTrackingNumber) {
			s.logger.WarnContext(ctx, "tracking number collision, retrying",
				slog.String("trackingNumber", booking.TrackingNumber),
				slog.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return nil, mapError(err)
		}
		s.publish(ctx, domain.BookingCreated{BaseEvent: domain.BaseEvent{Timestamp: now}, Booking: *saved})
		return saved, nil
	}
	return nil, ErrGenerationExhausted
}

// GetByTrackingNumber looks a booking up by its public identifier.
func (s *Service) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Booking, error) {
	return s.repo.GetByTrackingNumber(ctx, domain.NormalizeTrackingNumber(trackingNumber))
}

// GetByID looks a booking up by its internal identifier.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// List returns a page of bookings, newest first.
func (s *Service) List(ctx context.Context, query bookingtypes.ListBookingsQuery) (projection.Page[*domain.Booking], error) {
	filter := ports.ListFilter{
		Status: domain.Status(strings.TrimSpace(query.Status)),
		Search: strings.TrimSpace(query.Search),
		Page:   projection.NewPageRequest(query.Page, query.Limit),
	}
	return s.repo.List(ctx, filter)
}

// Statistics tallies bookings per status bucket.
func (s *Service) Statistics(ctx context.Context) (domain.Statistics, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}
	return domain.FromCounts(counts), nil
}

// UpdateStatus overwrites the booking status. Any status may follow any other.
func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (*domain.Booking, error) {
	next := domain.Status(strings.TrimSpace(status))
	if !next.Valid() {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	booking, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	previous := booking.Status
	now := s.now().UTC()
	changed, err := booking.UpdateStatus(next, now)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, booking)
	if err != nil {
		return nil, mapError(err)
	}
	if changed {
		s.publish(ctx, domain.BookingStatusChanged{
			BaseEvent:      domain.BaseEvent{Timestamp: now},
			Booking:        *saved,
			PreviousStatus: previous,
		})
	}
	return saved, nil
}

// Update applies a partial update. The estimated delivery date is only
// changed when explicitly supplied.
func (s *Service) Update(ctx context.Context, id string, input bookingtypes.UpdateBookingInput) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	previous := booking.Status
	if err := applyPatch(booking, input); err != nil {
		return nil, mapError(err)
	}
	booking.Normalize()
	if err := booking.Validate(); err != nil {
		return nil, mapError(err)
	}
	now := s.now().UTC()
	booking.UpdatedAt = now
	saved, err := s.repo.Save(ctx, booking)
	if err != nil {
		return nil, mapError(err)
	}
	if saved.Status != previous {
		s.publish(ctx, domain.BookingStatusChanged{
			BaseEvent:      domain.BaseEvent{Timestamp: now},
			Booking:        *saved,
			PreviousStatus: previous,
		})
	}
	return saved, nil
}

// Delete removes a booking.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

func (s *Service) publish(ctx context.Context, event domain.Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish booking event",
			slog.String("event", event.EventName()),
			slog.String("trackingNumber", event.Key()),
			slog.String("error", err.Error()),
		)
	}
}

func applyPatch(b *domain.Booking, in bookingtypes.UpdateBookingInput) error {
	setString(&b.Sender.Name, in.SenderName)
	setString(&b.Sender.Company, in.SenderCompany)
	setString(&b.Sender.Phone, in.SenderPhone)
	setString(&b.Sender.Email, in.SenderEmail)
	setString(&b.Sender.Address, in.SenderAddress)
	setString(&b.Receiver.Name, in.ReceiverName)
	setString(&b.Receiver.Phone, in.ReceiverPhone)
	setString(&b.Receiver.Address, in.ReceiverAddress)
	setString(&b.Receiver.Country, in.ReceiverCountry)
	setString(&b.CargoType, in.CargoType)
	setString(&b.Dimensions, in.Dimensions)
	setString(&b.SpecialInstructions, in.SpecialInstructions)
	if in.ShipmentType != nil {
		b.ShipmentType = domain.ShipmentType(strings.TrimSpace(*in.ShipmentType))
	}
	if in.DeliveryPriority != nil {
		b.Priority = domain.Priority(strings.TrimSpace(*in.DeliveryPriority))
	}
	if in.Weight != nil {
		b.Weight = *in.Weight
	}
	if in.PickupDate != nil {
		pickup, err := domain.ParseDate(*in.PickupDate)
		if err != nil {
			return err
		}
		b.PickupDate = pickup
	}
	if in.EstimatedDelivery != nil {
		estimated, err := domain.ParseDate(*in.EstimatedDelivery)
		if err != nil {
			return err
		}
		if !estimated.IsZero() {
			b.EstimatedDelivery = estimated
		}
	}
	if in.Status != nil {
		status := domain.Status(strings.TrimSpace(*in.Status))
		if !status.Valid() {
			return domain.ErrInvalidStatus
		}
		b.Status = status
	}
	return nil
}

func setString(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}

var _ ports.Service = (*Service)(nil)
