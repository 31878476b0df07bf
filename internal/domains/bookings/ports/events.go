package ports

import (
	"context"

	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
)

// EventPublisher delivers booking events to downstream consumers. Callers
// treat failures as non-fatal.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// NoopEventPublisher discards events.
var NoopEventPublisher EventPublisher = noopEventPublisher{}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(context.Context, domain.Event) error { return nil }
