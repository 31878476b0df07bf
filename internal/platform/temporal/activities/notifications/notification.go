package notifications

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/pan-logistics-api/internal/domains/notifications/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/notifications/ports"
)

// SendNotificationActivityName renders and sends one notification email.
const SendNotificationActivityName = "notifications.activities.SendNotification"

// Activities groups activities that operate on the notifications bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the notifications service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// SendNotification delivers the notification through the configured mailer.
func (a *Activities) SendNotification(ctx context.Context, n domain.Notification) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("notification activity not initialized", "kind", n.Kind)
		return errors.New("notification activity not initialized")
	}
	logger.Info("SendNotification activity started", "kind", n.Kind)
	if err := a.service.Send(ctx, n); err != nil {
		logger.Error("SendNotification activity failed", "kind", n.Kind, "error", err)
		return err
	}
	logger.Info("SendNotification activity completed", "kind", n.Kind)
	return nil
}
