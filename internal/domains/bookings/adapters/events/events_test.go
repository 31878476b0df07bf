package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
	notificationdomain "github.com/Apurer/pan-logistics-api/internal/domains/notifications/domain"
)

type capturedMessage struct {
	topic      string
	key, value []byte
}

type fakeProducer struct {
	mu       sync.Mutex
	messages []capturedMessage
	err      error
	// hang blocks Publish until the write context expires.
	hang bool
}

func (p *fakeProducer) Publish(ctx context.Context, topic string, key, value []byte) error {
	if p.hang {
		<-ctx.Done()
		return ctx.Err()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, capturedMessage{topic: topic, key: key, value: value})
	return p.err
}

func (p *fakeProducer) captured() []capturedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]capturedMessage(nil), p.messages...)
}

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(context.Context, domain.Event) error { return f.err }

func waitPublished(t *testing.T, p *KafkaPublisher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.Wait(ctx))
}

type fakeDispatcher struct {
	sent []notificationdomain.Notification
}

func (d *fakeDispatcher) Dispatch(_ context.Context, n notificationdomain.Notification) error {
	d.sent = append(d.sent, n)
	return nil
}

var occurred = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func booking() domain.Booking {
	return domain.Booking{
		ID:                "b-1",
		TrackingNumber:    "PAN-LOYW3V28-A1B2C3D4",
		Sender:            domain.Sender{Name: "Jane", Email: "jane@example.com"},
		Receiver:          domain.Receiver{Name: "Raj", Country: "United Kingdom"},
		ShipmentType:      domain.ShipmentAirFreight,
		Priority:          domain.PriorityUrgent,
		Status:            domain.StatusInTransit,
		EstimatedDelivery: time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_StatusChanged(t *testing.T) {
	producer := &fakeProducer{}
	publisher := NewKafkaPublisher(producer, "")

	err := publisher.Publish(context.Background(), domain.BookingStatusChanged{
		BaseEvent:      domain.BaseEvent{Timestamp: occurred},
		Booking:        booking(),
		PreviousStatus: domain.StatusProcessing,
	})
	require.NoError(t, err)
	waitPublished(t, publisher)
	messages := producer.captured()
	require.Len(t, messages, 1)
	got := messages[0]
	require.Equal(t, DefaultTopic, got.topic)
	require.Equal(t, "PAN-LOYW3V28-A1B2C3D4", string(got.key))

	var msg Message
	require.NoError(t, json.Unmarshal(got.value, &msg))
	require.Equal(t, "bookings.booking.status_changed", msg.Event)
	require.Equal(t, "In Transit", msg.Status)
	require.Equal(t, "Processing", msg.PreviousStatus)
	require.Equal(t, "2024-05-04", msg.EstimatedDelivery)
	require.True(t, occurred.Equal(msg.OccurredAt))
}

type unknownEvent struct{ domain.BaseEvent }

func (unknownEvent) EventName() string { return "unknown" }
func (unknownEvent) Key() string       { return "k" }

func TestKafkaPublisher_RejectsUnknownEvents(t *testing.T) {
	producer := &fakeProducer{}
	publisher := NewKafkaPublisher(producer, "custom")
	err := publisher.Publish(context.Background(), unknownEvent{})
	require.Error(t, err)
	waitPublished(t, publisher)
	require.Empty(t, producer.captured())
}

func TestKafkaPublisher_HungBrokerDoesNotBlockCaller(t *testing.T) {
	producer := &fakeProducer{hang: true}
	publisher := NewKafkaPublisher(producer, "", WithPublishTimeout(100*time.Millisecond))

	start := time.Now()
	require.NoError(t, publisher.Publish(context.Background(), domain.BookingCreated{Booking: booking()}))
	require.Less(t, time.Since(start), 50*time.Millisecond)

	waitPublished(t, publisher)
}

func TestKafkaPublisher_DropsWhenQueueFull(t *testing.T) {
	producer := &fakeProducer{hang: true}
	publisher := NewKafkaPublisher(producer, "", WithMaxInFlight(1), WithPublishTimeout(200*time.Millisecond))
	ctx := context.Background()

	require.NoError(t, publisher.Publish(ctx, domain.BookingCreated{Booking: booking()}))
	require.ErrorIs(t, publisher.Publish(ctx, domain.BookingCreated{Booking: booking()}), ErrPublisherBusy)

	waitPublished(t, publisher)
	require.NoError(t, publisher.Publish(ctx, domain.BookingCreated{Booking: booking()}))
	waitPublished(t, publisher)
}

func TestNotificationPublisher_MapsEvents(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	publisher := NewNotificationPublisher(dispatcher)
	ctx := context.Background()

	require.NoError(t, publisher.Publish(ctx, domain.BookingCreated{Booking: booking()}))
	require.NoError(t, publisher.Publish(ctx, domain.BookingStatusChanged{Booking: booking(), PreviousStatus: domain.StatusBooked}))
	require.Len(t, dispatcher.sent, 2)

	require.Equal(t, notificationdomain.KindBookingConfirmation, dispatcher.sent[0].Kind)
	require.Equal(t, "jane@example.com", dispatcher.sent[0].To)
	require.Equal(t, "Booking Confirmed - Tracking #PAN-LOYW3V28-A1B2C3D4", dispatcher.sent[0].Subject())

	require.Equal(t, notificationdomain.KindStatusUpdate, dispatcher.sent[1].Kind)
	require.Equal(t, "Booked", dispatcher.sent[1].Shipment.PreviousStatus)
}

func TestFanOut_RunsAllAndJoinsErrors(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker down")}
	kafkaPublisher := NewKafkaPublisher(producer, "")
	dispatcher := &fakeDispatcher{}
	fan := FanOut{failingPublisher{err: errors.New("sink down")}, kafkaPublisher, nil, NewNotificationPublisher(dispatcher)}

	err := fan.Publish(context.Background(), domain.BookingCreated{Booking: booking()})
	require.ErrorContains(t, err, "sink down")
	require.NotContains(t, err.Error(), "broker down")
	waitPublished(t, kafkaPublisher)
	require.Len(t, producer.captured(), 1)
	require.Len(t, dispatcher.sent, 1)
}
