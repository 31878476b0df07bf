package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/ports"
)

// DefaultTopic receives booking lifecycle events.
const DefaultTopic = "pan.bookings.events"

// Background delivery bounds.
const (
	DefaultPublishTimeout = 5 * time.Second
	DefaultMaxInFlight    = 64
)

// ErrPublisherBusy is returned when DefaultMaxInFlight writes are pending.
var ErrPublisherBusy = errors.New("kafka publisher busy, event dropped")

// MessagePublisher writes a keyed message to a topic.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// Message is the JSON body written for every booking event.
type Message struct {
	Event             string    `json:"event"`
	OccurredAt        time.Time `json:"occurred_at"`
	BookingID         string    `json:"booking_id"`
	TrackingNumber    string    `json:"tracking_number"`
	Status            string    `json:"status"`
	PreviousStatus    string    `json:"previous_status,omitempty"`
	ShipmentType      string    `json:"shipment_type"`
	DeliveryPriority  string    `json:"delivery_priority"`
	ReceiverCountry   string    `json:"receiver_country"`
	EstimatedDelivery string    `json:"estimated_delivery"`
}

// KafkaPublisher streams booking events to a Kafka topic keyed by tracking
// number. Writes run in the background so a slow broker never holds up the
// booking request; delivery failures are logged.
type KafkaPublisher struct {
	producer MessagePublisher
	topic    string
	timeout  time.Duration
	logger   *slog.Logger
	slots    chan struct{}
	wg       sync.WaitGroup
}

// KafkaOption customizes the publisher.
type KafkaOption func(*KafkaPublisher)

// WithPublishTimeout bounds each background write.
func WithPublishTimeout(timeout time.Duration) KafkaOption {
	return func(p *KafkaPublisher) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithMaxInFlight caps pending writes; events beyond it are dropped.
func WithMaxInFlight(n int) KafkaOption {
	return func(p *KafkaPublisher) {
		if n > 0 {
			p.slots = make(chan struct{}, n)
		}
	}
}

// WithLogger injects a slog logger for delivery failures.
func WithLogger(logger *slog.Logger) KafkaOption {
	return func(p *KafkaPublisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewKafkaPublisher wires a producer. An empty topic selects DefaultTopic.
func NewKafkaPublisher(producer MessagePublisher, topic string, opts ...KafkaOption) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	p := &KafkaPublisher{
		producer: producer,
		topic:    topic,
		timeout:  DefaultPublishTimeout,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		slots:    make(chan struct{}, DefaultMaxInFlight),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Publish encodes event and hands the write to a background goroutine
// detached from the caller's cancellation. Only encoding failures and a full
// queue are reported to the caller.
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	msg, err := NewMessage(event)
	if err != nil {
		return err
	}
	value, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "encode booking event")
	}
	select {
	case p.slots <- struct{}{}:
	default:
		return ErrPublisherBusy
	}
	key := []byte(event.Key())
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() { <-p.slots }()
		defer cancel()
		if err := p.producer.Publish(writeCtx, p.topic, key, value); err != nil {
			p.logger.WarnContext(writeCtx, "failed to publish booking event",
				slog.String("event", msg.Event),
				slog.String("tracking_number", msg.TrackingNumber),
				slog.String("error", err.Error()),
			)
		}
	}()
	return nil
}

// Wait blocks until pending writes finish or ctx is done.
func (p *KafkaPublisher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NewMessage flattens a booking event.
func NewMessage(event domain.Event) (Message, error) {
	var (
		booking  domain.Booking
		previous domain.Status
	)
	switch e := event.(type) {
	case domain.BookingCreated:
		booking = e.Booking
	case domain.BookingStatusChanged:
		booking = e.Booking
		previous = e.PreviousStatus
	default:
		return Message{}, errors.Errorf("unsupported booking event %T", event)
	}
	msg := Message{
		Event:            event.EventName(),
		OccurredAt:       event.OccurredAt().UTC(),
		BookingID:        booking.ID,
		TrackingNumber:   booking.TrackingNumber,
		Status:           string(booking.Status),
		PreviousStatus:   string(previous),
		ShipmentType:     string(booking.ShipmentType),
		DeliveryPriority: string(booking.Priority),
		ReceiverCountry:  booking.Receiver.Country,
	}
	if !booking.EstimatedDelivery.IsZero() {
		msg.EstimatedDelivery = booking.EstimatedDelivery.Format(time.DateOnly)
	}
	return msg, nil
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)
