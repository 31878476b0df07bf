package events

import (
	"context"

	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/ports"
	notificationdomain "github.com/Apurer/pan-logistics-api/internal/domains/notifications/domain"
	notificationports "github.com/Apurer/pan-logistics-api/internal/domains/notifications/ports"
)

// NotificationPublisher turns booking events into customer emails.
type NotificationPublisher struct {
	dispatcher notificationports.Dispatcher
}

// NewNotificationPublisher wires a notification dispatcher.
func NewNotificationPublisher(dispatcher notificationports.Dispatcher) *NotificationPublisher {
	return &NotificationPublisher{dispatcher: dispatcher}
}

// Publish dispatches the booking confirmation or status update email.
func (p *NotificationPublisher) Publish(ctx context.Context, event domain.Event) error {
	switch e := event.(type) {
	case domain.BookingCreated:
		return p.dispatcher.Dispatch(ctx, notificationdomain.Notification{
			Kind:     notificationdomain.KindBookingConfirmation,
			To:       e.Booking.Sender.Email,
			Shipment: shipmentOf(e.Booking, ""),
		})
	case domain.BookingStatusChanged:
		return p.dispatcher.Dispatch(ctx, notificationdomain.Notification{
			Kind:     notificationdomain.KindStatusUpdate,
			To:       e.Booking.Sender.Email,
			Shipment: shipmentOf(e.Booking, e.PreviousStatus),
		})
	}
	return nil
}

func shipmentOf(b domain.Booking, previous domain.Status) *notificationdomain.Shipment {
	return &notificationdomain.Shipment{
		TrackingNumber:    b.TrackingNumber,
		SenderName:        b.Sender.Name,
		ReceiverName:      b.Receiver.Name,
		ReceiverCountry:   b.Receiver.Country,
		ShipmentType:      string(b.ShipmentType),
		Priority:          string(b.Priority),
		Status:            string(b.Status),
		PreviousStatus:    string(previous),
		EstimatedDelivery: b.EstimatedDelivery,
	}
}

var _ ports.EventPublisher = (*NotificationPublisher)(nil)
