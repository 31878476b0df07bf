package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	bookingtypes "github.com/Apurer/pan-logistics-api/internal/domains/bookings/application/types"
	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/ports"
	"github.com/Apurer/pan-logistics-api/internal/shared/projection"
)

const tracerName = "github.com/Apurer/pan-logistics-api/internal/domains/bookings/adapters/observability/service"

// Service decorates the bookings application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// Create books a shipment with instrumentation.
func (s *Service) Create(ctx context.Context, input bookingtypes.CreateBookingInput) (*domain.Booking, error) {
	ctx, span := s.startSpan(ctx, "BookingsService.Create",
		attribute.String("booking.shipment_type", input.ShipmentType),
		attribute.String("booking.priority", input.DeliveryPriority),
	)
	defer span.End()

	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create booking")
	}
	span.SetAttributes(attribute.String("booking.tracking_number", result.TrackingNumber))
	s.metrics.recordCreated(ctx, result.ShipmentType)
	s.logInfo(ctx, "booking created",
		slog.String("booking.id", result.ID),
		slog.String("trackingNumber", result.TrackingNumber),
	)
	return result, nil
}

// GetByTrackingNumber looks a booking up with instrumentation.
func (s *Service) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Booking, error) {
	ctx, span := s.startSpan(ctx, "BookingsService.GetByTrackingNumber", attribute.String("booking.tracking_number", trackingNumber))
	defer span.End()

	result, err := s.inner.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get booking by tracking number", slog.String("trackingNumber", trackingNumber))
	}
	return result, nil
}

// GetByID looks a booking up by id with instrumentation.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	ctx, span := s.startSpan(ctx, "BookingsService.GetByID", attribute.String("booking.id", id))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get booking", slog.String("booking.id", id))
	}
	return result, nil
}

// List returns a page of bookings with instrumentation.
func (s *Service) List(ctx context.Context, query bookingtypes.ListBookingsQuery) (projection.Page[*domain.Booking], error) {
	ctx, span := s.startSpan(ctx, "BookingsService.List",
		attribute.Int("page", query.Page),
		attribute.Int("limit", query.Limit),
		attribute.String("booking.status", query.Status),
	)
	defer span.End()

	result, err := s.inner.List(ctx, query)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to list bookings")
	}
	span.SetAttributes(attribute.Int("booking.result.count", len(result.Items)), attribute.Int64("booking.result.total", result.Total))
	return result, nil
}

// Statistics tallies bookings with instrumentation.
func (s *Service) Statistics(ctx context.Context) (domain.Statistics, error) {
	ctx, span := s.startSpan(ctx, "BookingsService.Statistics")
	defer span.End()

	result, err := s.inner.Statistics(ctx)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to compute booking statistics")
	}
	span.SetAttributes(attribute.Int("booking.total", result.Total))
	return result, nil
}

// UpdateStatus moves a booking to a new status with instrumentation.
func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (*domain.Booking, error) {
	ctx, span := s.startSpan(ctx, "BookingsService.UpdateStatus",
		attribute.String("booking.id", id),
		attribute.String("booking.status", status),
	)
	defer span.End()

	result, err := s.inner.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update booking status", slog.String("booking.id", id), slog.String("status", status))
	}
	s.metrics.recordStatusUpdated(ctx, result.Status)
	s.logInfo(ctx, "booking status updated",
		slog.String("booking.id", result.ID),
		slog.String("status", string(result.Status)),
	)
	return result, nil
}

// Update applies a partial update with instrumentation.
func (s *Service) Update(ctx context.Context, id string, input bookingtypes.UpdateBookingInput) (*domain.Booking, error) {
	ctx, span := s.startSpan(ctx, "BookingsService.Update", attribute.String("booking.id", id))
	defer span.End()

	result, err := s.inner.Update(ctx, id, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update booking", slog.String("booking.id", id))
	}
	s.metrics.recordUpdated(ctx)
	s.logInfo(ctx, "booking updated", slog.String("booking.id", result.ID))
	return result, nil
}

// Delete removes a booking with instrumentation.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.startSpan(ctx, "BookingsService.Delete", attribute.String("booking.id", id))
	defer span.End()

	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete booking", slog.String("booking.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "booking deleted", slog.String("booking.id", id))
	return nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	bookingsCreated       metric.Int64Counter
	bookingsUpdated       metric.Int64Counter
	bookingsStatusUpdated metric.Int64Counter
	bookingsDeleted       metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("bookings.service.created", metric.WithDescription("Number of bookings created"))
	updated, _ := m.Int64Counter("bookings.service.updated", metric.WithDescription("Number of bookings edited"))
	statusUpdated, _ := m.Int64Counter("bookings.service.status_updated", metric.WithDescription("Number of booking status changes"))
	deleted, _ := m.Int64Counter("bookings.service.deleted", metric.WithDescription("Number of bookings deleted"))
	return serviceMetrics{
		bookingsCreated:       created,
		bookingsUpdated:       updated,
		bookingsStatusUpdated: statusUpdated,
		bookingsDeleted:       deleted,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, shipmentType domain.ShipmentType) {
	addCounter(ctx, m.bookingsCreated, 1, attribute.String("booking.shipment_type", string(shipmentType)))
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	addCounter(ctx, m.bookingsUpdated, 1)
}

func (m serviceMetrics) recordStatusUpdated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.bookingsStatusUpdated, 1, attribute.String("booking.status", string(status)))
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.bookingsDeleted, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
