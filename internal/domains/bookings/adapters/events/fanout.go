package events

import (
	"context"
	"errors"

	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/ports"
)

// FanOut delivers every event to all publishers. One failing publisher does
// not prevent the others from running.
type FanOut []ports.EventPublisher

// Publish calls each publisher in order and joins their errors.
func (f FanOut) Publish(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, publisher := range f {
		if publisher == nil {
			continue
		}
		if err := publisher.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ ports.EventPublisher = FanOut(nil)
