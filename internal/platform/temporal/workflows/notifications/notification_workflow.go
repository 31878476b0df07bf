package notifications

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pan-logistics-api/internal/domains/notifications/domain"
	"github.com/Apurer/pan-logistics-api/internal/platform/temporal/sequences"
)

const (
	// NotificationWorkflowName is the public identifier for registering the workflow.
	NotificationWorkflowName = "notifications.workflows.Send"
	// NotificationTaskQueue is the queue consumed by the notification worker.
	NotificationTaskQueue = "NOTIFICATIONS"
)

// NotificationWorkflowInput carries the notification and the originating trace.
type NotificationWorkflowInput struct {
	Notification domain.Notification
	TraceID      string
}

// NotificationWorkflow sends a single transactional email.
func NotificationWorkflow(ctx workflow.Context, input NotificationWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	kind := input.Notification.Kind
	logger.Info("NotificationWorkflow started", withTraceID(input.TraceID, "kind", kind)...)
	if err := sequences.RunNotificationSequence(ctx, input.Notification); err != nil {
		logger.Error("NotificationWorkflow failed", withTraceID(input.TraceID, "kind", kind, "error", err)...)
		return err
	}
	logger.Info("NotificationWorkflow completed", withTraceID(input.TraceID, "kind", kind)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
