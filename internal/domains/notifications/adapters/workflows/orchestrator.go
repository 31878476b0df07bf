package workflows

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/pan-logistics-api/internal/domains/notifications/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/notifications/ports"
	notificationworkflows "github.com/Apurer/pan-logistics-api/internal/platform/temporal/workflows/notifications"
)

// DefaultInlineTimeout bounds a single inline send.
const DefaultInlineTimeout = 30 * time.Second

var (
	_ ports.Dispatcher = (*TemporalDispatcher)(nil)
	_ ports.Dispatcher = (*InlineDispatcher)(nil)
)

// TemporalDispatcher starts notification workflows on a Temporal cluster.
type TemporalDispatcher struct {
	client    client.Client
	taskQueue string
}

// NewTemporalDispatcher wires a Temporal client into the dispatcher.
func NewTemporalDispatcher(c client.Client) *TemporalDispatcher {
	return &TemporalDispatcher{client: c, taskQueue: notificationworkflows.NotificationTaskQueue}
}

// Dispatch starts the workflow and returns without waiting for the email.
func (d *TemporalDispatcher) Dispatch(ctx context.Context, n domain.Notification) error {
	if d == nil || d.client == nil {
		return errors.New("temporal notification dispatcher not configured")
	}
	if err := n.Validate(); err != nil {
		return err
	}
	// Trace IDs come from the caller's traceparent header, so they are not
	// unique enough to key a workflow on.
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("notification-%s-%s", n.Kind, uuid.NewString()),
		TaskQueue: d.taskQueue,
	}
	_, err := d.client.ExecuteWorkflow(
		ctx,
		options,
		notificationworkflows.NotificationWorkflow,
		notificationworkflows.NotificationWorkflowInput{Notification: n, TraceID: workflowTraceID(ctx)},
	)
	return err
}

// InlineDispatcher sends on a background goroutine, for development or when
// Temporal is unavailable.
type InlineDispatcher struct {
	service ports.Service
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// InlineOption customizes the inline dispatcher.
type InlineOption func(*InlineDispatcher)

// WithTimeout bounds each send.
func WithTimeout(timeout time.Duration) InlineOption {
	return func(d *InlineDispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithLogger injects a slog logger for delivery failures.
func WithLogger(logger *slog.Logger) InlineOption {
	return func(d *InlineDispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewInlineDispatcher wraps the notifications service.
func NewInlineDispatcher(service ports.Service, opts ...InlineOption) *InlineDispatcher {
	d := &InlineDispatcher{
		service: service,
		timeout: DefaultInlineTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Dispatch sends n on a goroutine detached from the caller's cancellation.
func (d *InlineDispatcher) Dispatch(ctx context.Context, n domain.Notification) error {
	if d == nil || d.service == nil {
		return errors.New("inline notification dispatcher not configured")
	}
	if err := n.Validate(); err != nil {
		return err
	}
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		if err := d.service.Send(sendCtx, n); err != nil {
			d.logger.ErrorContext(sendCtx, "failed to send notification",
				slog.String("kind", string(n.Kind)),
				slog.String("error", err.Error()),
			)
		}
	}()
	return nil
}

// Wait blocks until in-flight sends finish or ctx is done.
func (d *InlineDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
