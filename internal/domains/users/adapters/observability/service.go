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

	usertypes "github.com/Apurer/pan-logistics-api/internal/domains/users/application/types"
	userdomain "github.com/Apurer/pan-logistics-api/internal/domains/users/domain"
	userports "github.com/Apurer/pan-logistics-api/internal/domains/users/ports"
)

const tracerName = "github.com/Apurer/pan-logistics-api/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
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

func (s *Service) Login(ctx context.Context, email, password string) (*usertypes.Session, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login")
	defer span.End()
	result, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return nil, s.handleError(ctx, span, err, "login failed", slog.String("email", email))
	}
	s.metrics.recordLogin(ctx, true)
	span.SetAttributes(attribute.String("user.id", result.User.ID))
	s.logInfo(ctx, "user logged in", slog.String("user.id", result.User.ID))
	return result, nil
}

func (s *Service) Register(ctx context.Context, input usertypes.RegisterInput) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Register", trace.WithAttributes(attribute.String("user.role", input.Role)))
	defer span.End()
	result, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to register user", slog.String("email", input.Email))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "user registered", slog.String("user.id", result.ID), slog.String("role", string(result.Role)))
	return result, nil
}

// Authenticate runs on every protected request, so only failures are logged.
func (s *Service) Authenticate(ctx context.Context, token string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Authenticate")
	defer span.End()
	result, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelWarn, "authentication rejected", slog.String("error", err.Error()))
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", result.ID), attribute.String("user.role", string(result.Role)))
	return result, nil
}

func (s *Service) Me(ctx context.Context, id string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Me", trace.WithAttributes(attribute.String("user.id", id)))
	defer span.End()
	result, err := s.inner.Me(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load user", slog.String("user.id", id))
	}
	return result, nil
}

func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.ChangePassword", trace.WithAttributes(attribute.String("user.id", id)))
	defer span.End()
	if err := s.inner.ChangePassword(ctx, id, current, next); err != nil {
		return s.handleError(ctx, span, err, "failed to change password", slog.String("user.id", id))
	}
	s.logInfo(ctx, "password changed", slog.String("user.id", id))
	return nil
}

func (s *Service) List(ctx context.Context) ([]*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.List")
	defer span.End()
	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list users")
	}
	span.SetAttributes(attribute.Int("user.result.count", len(result)))
	return result, nil
}

func (s *Service) UpdateRole(ctx context.Context, id, role string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.UpdateRole", trace.WithAttributes(
		attribute.String("user.id", id),
		attribute.String("user.role", role),
	))
	defer span.End()
	result, err := s.inner.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update role", slog.String("user.id", id))
	}
	s.logInfo(ctx, "user role updated", slog.String("user.id", id), slog.String("role", string(result.Role)))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Delete", trace.WithAttributes(attribute.String("user.id", id)))
	defer span.End()
	if err := s.inner.Delete(ctx, actorID, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete user", slog.String("user.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "user deleted", slog.String("user.id", id), slog.String("actor.id", actorID))
	return nil
}

func (s *Service) EnsureAdmin(ctx context.Context, input usertypes.RegisterInput) (*userdomain.User, bool, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.EnsureAdmin")
	defer span.End()
	result, created, err := s.inner.EnsureAdmin(ctx, input)
	if err != nil {
		return nil, false, s.handleError(ctx, span, err, "failed to seed admin", slog.String("email", input.Email))
	}
	if created {
		s.metrics.recordCreated(ctx)
	}
	s.logInfo(ctx, "admin account ensured", slog.String("user.id", result.ID), slog.Bool("created", created))
	return result, created, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	usersCreated metric.Int64Counter
	usersDeleted metric.Int64Counter
	logins       metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("users.service.created", metric.WithDescription("Number of users created"))
	deleted, _ := m.Int64Counter("users.service.deleted", metric.WithDescription("Number of users deleted"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of login attempts by outcome"))
	return serviceMetrics{usersCreated: created, usersDeleted: deleted, logins: logins}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.usersCreated != nil {
		m.usersCreated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.usersDeleted != nil {
		m.usersDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, success bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("login.success", success)))
	}
}

var _ userports.Service = (*Service)(nil)
