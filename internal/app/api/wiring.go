package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	bookingsevents "github.com/Apurer/pan-logistics-api/internal/domains/bookings/adapters/events"
	bookingsmemory "github.com/Apurer/pan-logistics-api/internal/domains/bookings/adapters/memory"
	bookingspostgres "github.com/Apurer/pan-logistics-api/internal/domains/bookings/adapters/persistence/postgres"
	bookingports "github.com/Apurer/pan-logistics-api/internal/domains/bookings/ports"
	contactmemory "github.com/Apurer/pan-logistics-api/internal/domains/contact/adapters/memory"
	contactpostgres "github.com/Apurer/pan-logistics-api/internal/domains/contact/adapters/persistence/postgres"
	contactports "github.com/Apurer/pan-logistics-api/internal/domains/contact/ports"
	notificationsmail "github.com/Apurer/pan-logistics-api/internal/domains/notifications/adapters/mail"
	notificationsworkflows "github.com/Apurer/pan-logistics-api/internal/domains/notifications/adapters/workflows"
	notificationsapp "github.com/Apurer/pan-logistics-api/internal/domains/notifications/application"
	notificationports "github.com/Apurer/pan-logistics-api/internal/domains/notifications/ports"
	usermemory "github.com/Apurer/pan-logistics-api/internal/domains/users/adapters/memory"
	userpostgres "github.com/Apurer/pan-logistics-api/internal/domains/users/adapters/persistence/postgres"
	userports "github.com/Apurer/pan-logistics-api/internal/domains/users/ports"
	platformkafka "github.com/Apurer/pan-logistics-api/internal/platform/kafka"
	platformmail "github.com/Apurer/pan-logistics-api/internal/platform/mail"
	"github.com/Apurer/pan-logistics-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/pan-logistics-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/pan-logistics-api/internal/platform/postgres"
	"github.com/Apurer/pan-logistics-api/internal/platform/ratelimit"
)

// Repositories groups the storage adapters for every bounded context.
type Repositories struct {
	Bookings bookingports.Repository
	Contact  contactports.Repository
	Users    userports.Repository
	Postgres bool
}

// OpenRepositories connects to Postgres when a DSN is configured and falls
// back to in-memory storage otherwise. The returned func releases the pool.
func OpenRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (Repositories, func(), error) {
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return Repositories{
			Bookings: bookingsmemory.NewRepository(),
			Contact:  contactmemory.NewRepository(),
			Users:    usermemory.NewRepository(),
		}, cleanup, nil
	}
	repos, err := postgresRepositories(db)
	if err != nil {
		cleanup()
		return Repositories{}, func() {}, err
	}
	logger.Info("repositories configured with postgres")
	return repos, cleanup, nil
}

func postgresRepositories(db *gorm.DB) (Repositories, error) {
	if err := migrations.Run(db); err != nil {
		return Repositories{}, fmt.Errorf("migrate schema: %w", err)
	}
	return Repositories{
		Bookings: bookingspostgres.NewRepository(db),
		Contact:  contactpostgres.NewRepository(db),
		Users:    userpostgres.NewRepository(db),
		Postgres: true,
	}, nil
}

// NewNotificationService builds the synchronous email sender used by the
// inline dispatcher and the Temporal worker.
func NewNotificationService(cfg Config, logger *slog.Logger) (*notificationsapp.Service, error) {
	sender := platformmail.NewSender(cfg.SMTP, logger)
	return notificationsapp.NewService(
		notificationsmail.NewMailer(sender),
		notificationsapp.WithFrontendURL(cfg.FrontendURL),
		notificationsapp.WithLogger(logger),
	)
}

// dispatcher is a notification dispatcher plus the hook that drains it on
// shutdown.
type dispatcher struct {
	notificationports.Dispatcher
	drain func(context.Context) error
}

func buildDispatcher(cfg Config, instruments *platformobservability.Instruments, service notificationports.Service) dispatcher {
	logger := effectiveLogger(instruments)
	inline := func() dispatcher {
		d := notificationsworkflows.NewInlineDispatcher(service, notificationsworkflows.WithLogger(logger))
		return dispatcher{Dispatcher: d, drain: d.Wait}
	}
	temporalClient, err := DialTemporal(cfg, instruments, "temporal-client")
	if err != nil {
		logger.Warn("Temporal workflows unavailable, sending notifications inline", slog.String("error", err.Error()))
		return inline()
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	return dispatcher{
		Dispatcher: notificationsworkflows.NewTemporalDispatcher(temporalClient),
		drain: func(context.Context) error {
			temporalClient.Close()
			return nil
		},
	}
}

// buildEventPublisher fans booking events out to the notification dispatcher
// and, when brokers are configured, to Kafka.
func buildEventPublisher(cfg Config, logger *slog.Logger, d notificationports.Dispatcher) (bookingports.EventPublisher, func()) {
	publishers := bookingsevents.FanOut{bookingsevents.NewNotificationPublisher(d)}
	if len(cfg.KafkaBrokers) == 0 {
		return publishers, func() {}
	}
	producer := platformkafka.NewProducer(cfg.KafkaBrokers)
	kafkaPublisher := bookingsevents.NewKafkaPublisher(producer, cfg.KafkaTopic, bookingsevents.WithLogger(logger))
	publishers = append(publishers, kafkaPublisher)
	logger.Info("booking events published to kafka",
		slog.Any("brokers", cfg.KafkaBrokers),
		slog.String("topic", cfg.KafkaTopic),
	)
	return publishers, func() {
		drainCtx, cancel := context.WithTimeout(context.Background(), bookingsevents.DefaultPublishTimeout)
		defer cancel()
		if err := kafkaPublisher.Wait(drainCtx); err != nil {
			logger.Warn("pending booking events not published", slog.String("error", err.Error()))
		}
		if err := producer.Close(); err != nil {
			logger.Warn("failed to close kafka producer", slog.String("error", err.Error()))
		}
	}
}

// buildLimiter returns nil when Redis is not configured or unreachable, which
// disables rate limiting.
func buildLimiter(ctx context.Context, cfg Config, logger *slog.Logger) (*ratelimit.RateLimiter, func()) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, rate limiting disabled")
		return nil, func() {}
	}
	limiter := ratelimit.NewRateLimiter(cfg.RedisAddr)
	if err := limiter.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, rate limiting disabled", slog.String("error", err.Error()))
		_ = limiter.Close()
		return nil, func() {}
	}
	logger.Info("rate limiting enabled", slog.String("redis", cfg.RedisAddr), slog.Int64("perMinute", cfg.RateLimitPerMin))
	return limiter, func() { _ = limiter.Close() }
}

// DialTemporal connects to the configured Temporal frontend with tracing and
// structured logging.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer(tracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
