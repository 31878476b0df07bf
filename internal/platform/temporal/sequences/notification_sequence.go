package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pan-logistics-api/internal/domains/notifications/domain"
	notificationactivities "github.com/Apurer/pan-logistics-api/internal/platform/temporal/activities/notifications"
)

// RunNotificationSequence sends a notification once. Delivery failures are
// not retried; a lost email is logged and dropped.
func RunNotificationSequence(ctx workflow.Context, n domain.Notification) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("notification sequence started", "kind", n.Kind)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), notificationactivities.SendNotificationActivityName, n).Get(ctx, nil)
	if err != nil {
		logger.Error("notification sequence failed", "kind", n.Kind, "error", err)
		return err
	}
	logger.Info("notification sequence completed", "kind", n.Kind)
	return nil
}
