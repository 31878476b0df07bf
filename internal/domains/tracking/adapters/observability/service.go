package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/pan-logistics-api/internal/domains/tracking/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/tracking/ports"
)

const tracerName = "github.com/Apurer/pan-logistics-api/internal/domains/tracking/adapters/observability/service"

// Service decorates the tracking port with tracing, logging, and metrics.
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
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
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
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Track resolves a tracking view with instrumentation.
func (s *Service) Track(ctx context.Context, trackingNumber string) (*domain.View, error) {
	ctx, span := s.tracer.Start(ctx, "TrackingService.Track",
		trace.WithAttributes(attribute.String("tracking.number", trackingNumber)))
	defer span.End()

	view, err := s.inner.Track(ctx, trackingNumber)
	if err != nil {
		if errors.Is(err, ports.ErrShipmentNotFound) {
			s.metrics.recordLookup(ctx, "not_found")
			span.SetAttributes(attribute.Bool("tracking.found", false))
			return nil, err
		}
		s.metrics.recordLookup(ctx, "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to track shipment",
			slog.String("trackingNumber", trackingNumber),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	s.metrics.recordLookup(ctx, "found")
	span.SetAttributes(
		attribute.Bool("tracking.found", true),
		attribute.String("tracking.status", string(view.Status)),
	)
	return view, nil
}

// Validate checks a tracking number with instrumentation.
func (s *Service) Validate(ctx context.Context, trackingNumber string) (domain.Validation, error) {
	ctx, span := s.tracer.Start(ctx, "TrackingService.Validate",
		trace.WithAttributes(attribute.String("tracking.number", trackingNumber)))
	defer span.End()

	result, err := s.inner.Validate(ctx, trackingNumber)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to validate tracking number",
			slog.String("trackingNumber", trackingNumber),
			slog.String("error", err.Error()),
		)
		return result, err
	}
	span.SetAttributes(
		attribute.Bool("tracking.valid", result.Valid),
		attribute.Bool("tracking.exists", result.Exists),
	)
	return result, nil
}

type serviceMetrics struct {
	lookups metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	lookups, _ := m.Int64Counter("tracking.service.lookups", metric.WithDescription("Number of tracking lookups by outcome"))
	return serviceMetrics{lookups: lookups}
}

func (m serviceMetrics) recordLookup(ctx context.Context, outcome string) {
	if m.lookups == nil {
		return
	}
	m.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("tracking.outcome", outcome)))
}

var _ ports.Service = (*Service)(nil)
