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

	contacttypes "github.com/Apurer/pan-logistics-api/internal/domains/contact/application/types"
	"github.com/Apurer/pan-logistics-api/internal/domains/contact/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/contact/ports"
	"github.com/Apurer/pan-logistics-api/internal/shared/projection"
)

const tracerName = "github.com/Apurer/pan-logistics-api/internal/domains/contact/adapters/observability/service"

// Service decorates the contact port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

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

func (s *Service) Submit(ctx context.Context, input contacttypes.SubmitMessageInput) (*domain.Message, error) {
	ctx, span := s.startSpan(ctx, "ContactService.Submit", attribute.Bool("contact.has_subject", input.Subject != ""))
	defer span.End()

	result, err := s.inner.Submit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to submit contact message")
	}
	span.SetAttributes(attribute.String("contact.message_id", result.ID))
	s.metrics.addSubmitted(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "contact message received", slog.String("message.id", result.ID))
	return result, nil
}

func (s *Service) List(ctx context.Context, query contacttypes.ListMessagesQuery) (projection.Page[*domain.Message], error) {
	ctx, span := s.startSpan(ctx, "ContactService.List",
		attribute.Int("page", query.Page),
		attribute.Int("limit", query.Limit),
		attribute.Bool("contact.unread_only", query.UnreadOnly),
	)
	defer span.End()

	result, err := s.inner.List(ctx, query)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to list contact messages")
	}
	span.SetAttributes(attribute.Int64("contact.result.total", result.Total))
	return result, nil
}

func (s *Service) UnreadCount(ctx context.Context) (int64, error) {
	ctx, span := s.startSpan(ctx, "ContactService.UnreadCount")
	defer span.End()

	n, err := s.inner.UnreadCount(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to count unread messages")
	}
	return n, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id string) error {
	ctx, span := s.startSpan(ctx, "ContactService.MarkAsRead", attribute.String("contact.message_id", id))
	defer span.End()

	if err := s.inner.MarkAsRead(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to mark message as read", slog.String("message.id", id))
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.startSpan(ctx, "ContactService.Delete", attribute.String("contact.message_id", id))
	defer span.End()

	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete message", slog.String("message.id", id))
	}
	s.metrics.addDeleted(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "contact message deleted", slog.String("message.id", id))
	return nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	submitted metric.Int64Counter
	deleted   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	submitted, _ := m.Int64Counter("contact.service.submitted", metric.WithDescription("Number of contact messages received"))
	deleted, _ := m.Int64Counter("contact.service.deleted", metric.WithDescription("Number of contact messages deleted"))
	return serviceMetrics{submitted: submitted, deleted: deleted}
}

func (m serviceMetrics) addSubmitted(ctx context.Context) {
	if m.submitted != nil {
		m.submitted.Add(ctx, 1)
	}
}

func (m serviceMetrics) addDeleted(ctx context.Context) {
	if m.deleted != nil {
		m.deleted.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
