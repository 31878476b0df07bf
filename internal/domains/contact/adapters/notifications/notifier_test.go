package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/pan-logistics-api/internal/domains/contact/domain"
	notificationdomain "github.com/Apurer/pan-logistics-api/internal/domains/notifications/domain"
)

type captureDispatcher struct {
	got []notificationdomain.Notification
}

func (c *captureDispatcher) Dispatch(_ context.Context, n notificationdomain.Notification) error {
	c.got = append(c.got, n)
	return nil
}

func TestMessageReceived(t *testing.T) {
	dispatcher := &captureDispatcher{}
	err := NewNotifier(dispatcher).MessageReceived(context.Background(), domain.Message{
		Name: "Ada", Email: "ada@example.com", Subject: "Quote",
	})
	require.NoError(t, err)
	require.Len(t, dispatcher.got, 1)
	n := dispatcher.got[0]
	require.Equal(t, notificationdomain.KindContactConfirmation, n.Kind)
	require.Equal(t, "ada@example.com", n.To)
	require.Equal(t, "Ada", n.Inquiry.Name)
	require.NoError(t, n.Validate())
}
