package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/pan-logistics-api/internal/domains/notifications/domain"
)

type recordingMailer struct {
	sent []domain.Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, email domain.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func newTestService(t *testing.T, mailer *recordingMailer) *Service {
	t.Helper()
	svc, err := NewService(mailer,
		WithFrontendURL("https://panlogistics.ca/"),
		WithClock(func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }),
	)
	require.NoError(t, err)
	return svc
}

func shipment() *domain.Shipment {
	return &domain.Shipment{
		TrackingNumber:    "PAN-LOYW3V28-A1B2C3D4",
		ShipmentType:      "Air Freight",
		Priority:          "Urgent",
		Status:            "In Transit",
		EstimatedDelivery: time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
	}
}

func TestRender_BookingConfirmation(t *testing.T) {
	svc := newTestService(t, &recordingMailer{})

	email, err := svc.Render(domain.Notification{
		Kind:     domain.KindBookingConfirmation,
		To:       "jane@example.com",
		Shipment: shipment(),
	})
	require.NoError(t, err)
	require.Equal(t, "Booking Confirmed - Tracking #PAN-LOYW3V28-A1B2C3D4", email.Subject)
	require.Equal(t, "jane@example.com", email.To)
	require.Contains(t, email.HTML, "PAN-LOYW3V28-A1B2C3D4")
	require.Contains(t, email.HTML, "2024-05-04")
	require.Contains(t, email.HTML, `href="https://panlogistics.ca/tracking.html"`)
	require.Contains(t, email.HTML, "&copy; 2024 Pan Logistics")
	require.Contains(t, email.Text, "Priority: Urgent")
}

func TestRender_StatusUpdate(t *testing.T) {
	svc := newTestService(t, &recordingMailer{})

	email, err := svc.Render(domain.Notification{
		Kind:     domain.KindStatusUpdate,
		To:       "jane@example.com",
		Shipment: shipment(),
	})
	require.NoError(t, err)
	require.Equal(t, "Shipment Update - PAN-LOYW3V28-A1B2C3D4", email.Subject)
	require.Contains(t, email.HTML, "In Transit")
	require.Contains(t, email.Text, "Status: In Transit")
}

func TestRender_ContactConfirmationEscapesName(t *testing.T) {
	svc := newTestService(t, &recordingMailer{})

	email, err := svc.Render(domain.Notification{
		Kind:    domain.KindContactConfirmation,
		To:      "visitor@example.com",
		Inquiry: &domain.Inquiry{Name: "<b>Eve</b>"},
	})
	require.NoError(t, err)
	require.Equal(t, "Message Received - Pan Logistics", email.Subject)
	require.Contains(t, email.HTML, "&lt;b&gt;Eve&lt;/b&gt;")
	require.NotContains(t, email.HTML, "<b>Eve</b>")
}

func TestRender_RejectsInvalidNotifications(t *testing.T) {
	svc := newTestService(t, &recordingMailer{})

	_, err := svc.Render(domain.Notification{Kind: domain.KindStatusUpdate, To: "not-an-email", Shipment: shipment()})
	require.ErrorIs(t, err, domain.ErrInvalidRecipient)

	_, err = svc.Render(domain.Notification{Kind: domain.KindStatusUpdate, To: "a@b.co"})
	require.ErrorIs(t, err, domain.ErrMissingDetails)

	_, err = svc.Render(domain.Notification{Kind: "sms", To: "a@b.co"})
	require.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestSend_DeliversThroughMailer(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newTestService(t, mailer)

	require.NoError(t, svc.Send(context.Background(), domain.Notification{
		Kind: domain.KindContactConfirmation,
		To:   "visitor@example.com",
	}))
	require.Len(t, mailer.sent, 1)

	mailer.err = errors.New("smtp down")
	err := svc.Send(context.Background(), domain.Notification{Kind: domain.KindContactConfirmation, To: "visitor@example.com"})
	require.ErrorContains(t, err, "smtp down")
}
