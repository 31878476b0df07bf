package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"

	logisticsserver "github.com/Apurer/pan-logistics-api/go"
	bookingsobs "github.com/Apurer/pan-logistics-api/internal/domains/bookings/adapters/observability"
	bookingsapp "github.com/Apurer/pan-logistics-api/internal/domains/bookings/application"
	contactnotifications "github.com/Apurer/pan-logistics-api/internal/domains/contact/adapters/notifications"
	contactobs "github.com/Apurer/pan-logistics-api/internal/domains/contact/adapters/observability"
	contactapp "github.com/Apurer/pan-logistics-api/internal/domains/contact/application"
	trackingobs "github.com/Apurer/pan-logistics-api/internal/domains/tracking/adapters/observability"
	trackingapp "github.com/Apurer/pan-logistics-api/internal/domains/tracking/application"
	userobs "github.com/Apurer/pan-logistics-api/internal/domains/users/adapters/observability"
	"github.com/Apurer/pan-logistics-api/internal/domains/users/adapters/tokens"
	userapp "github.com/Apurer/pan-logistics-api/internal/domains/users/application"
	usertypes "github.com/Apurer/pan-logistics-api/internal/domains/users/application/types"
	userports "github.com/Apurer/pan-logistics-api/internal/domains/users/ports"
	platformobservability "github.com/Apurer/pan-logistics-api/internal/platform/observability"
)

// ServiceName identifies the API in logs and traces.
const ServiceName = "pan-logistics-api"

const shutdownTimeout = 10 * time.Second

// Run boots the logistics HTTP API and blocks until ctx is cancelled or the
// server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, ServiceName,
		platformobservability.WithLogLevel(cfg.LogLevel),
		platformobservability.WithEnvironment(cfg.Environment),
		platformobservability.WithStdoutTraces(cfg.TracesStdout),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	if cfg.JWTSecretDefaulted {
		logger.Warn("JWT_SECRET not set, using the development secret")
	}

	repos, closeRepos, err := OpenRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()

	notificationService, err := NewNotificationService(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build notification service: %w", err)
	}
	notifications := buildDispatcher(cfg, instruments, notificationService)
	defer func() {
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := notifications.drain(drainCtx); err != nil {
			logger.Warn("pending notifications not drained", slog.String("error", err.Error()))
		}
	}()
	publisher, closePublisher := buildEventPublisher(cfg, logger, notifications)
	defer closePublisher()

	bookingService := bookingsobs.New(
		bookingsapp.NewService(repos.Bookings,
			bookingsapp.WithEventPublisher(publisher),
			bookingsapp.WithLogger(logger),
		),
		bookingsobs.WithLogger(logger),
		bookingsobs.WithTracer(instruments.Tracer("internal.bookings.application")),
		bookingsobs.WithMeter(instruments.Meter("internal.bookings.application")),
	)
	trackingService := trackingobs.New(
		trackingapp.NewService(repos.Bookings),
		trackingobs.WithLogger(logger),
		trackingobs.WithTracer(instruments.Tracer("internal.tracking.application")),
		trackingobs.WithMeter(instruments.Meter("internal.tracking.application")),
	)
	contactService := contactobs.New(
		contactapp.NewService(repos.Contact,
			contactapp.WithNotifier(contactnotifications.NewNotifier(notifications)),
			contactapp.WithLogger(logger),
		),
		contactobs.WithLogger(logger),
		contactobs.WithTracer(instruments.Tracer("internal.contact.application")),
		contactobs.WithMeter(instruments.Meter("internal.contact.application")),
	)
	userService, err := newUserService(cfg, repos, instruments)
	if err != nil {
		return err
	}
	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if err := ensureAdmin(ctx, cfg.Admin, userService, logger); err != nil {
			return err
		}
	}

	limiter, closeLimiter := buildLimiter(ctx, cfg, logger)
	defer closeLimiter()

	routerOptions := []logisticsserver.RouterOption{
		logisticsserver.WithRouterLogger(logger),
		logisticsserver.WithAuthenticator(userService),
		logisticsserver.WithCORSOrigins(cfg.CORSOrigins),
		logisticsserver.WithMiddleware(otelgin.Middleware(ServiceName)),
	}
	if limiter != nil {
		routerOptions = append(routerOptions, logisticsserver.WithRateLimiter(limiter, cfg.RateLimitPerMin))
	}
	router := logisticsserver.NewRouter(logisticsserver.ApiHandleFunctions{
		BookingsAPI: logisticsserver.NewBookingsAPI(bookingService),
		TrackingAPI: logisticsserver.NewTrackingAPI(trackingService),
		ContactAPI:  logisticsserver.NewContactAPI(contactService),
		AuthAPI:     logisticsserver.NewAuthAPI(userService),
		HealthAPI:   logisticsserver.NewHealthAPI(),
	}, routerOptions...)

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, server, logger)
}

func serve(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Pan Logistics API listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Pan Logistics API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down Pan Logistics API")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newUserService(cfg Config, repos Repositories, instruments *platformobservability.Instruments) (userports.Service, error) {
	issuer, err := tokens.NewJWT(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("failed to configure tokens: %w", err)
	}
	logger := effectiveLogger(instruments)
	return userobs.New(
		userapp.NewService(repos.Users, issuer, userapp.WithLogger(logger)),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	), nil
}

func ensureAdmin(ctx context.Context, seed AdminSeed, users userports.Service, logger *slog.Logger) error {
	user, created, err := users.EnsureAdmin(ctx, usertypes.RegisterInput{
		Name:     seed.Name,
		Email:    seed.Email,
		Password: seed.Password,
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if created {
		logger.Info("admin account created", slog.String("user.id", user.ID), slog.String("email", user.Email))
	} else {
		logger.Info("admin account already exists", slog.String("user.id", user.ID))
	}
	return nil
}

// SeedAdmin creates the configured admin account in the configured storage.
func SeedAdmin(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) error {
	logger := effectiveLogger(instruments)
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}
	repos, closeRepos, err := OpenRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepos()
	if !repos.Postgres {
		return errors.New("postgres unavailable; refusing to seed in-memory storage")
	}
	users, err := newUserService(cfg, repos, instruments)
	if err != nil {
		return err
	}
	return ensureAdmin(ctx, cfg.Admin, users, logger)
}
