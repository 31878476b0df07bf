package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
)

var (
	// ErrInvalidInput signals the request violated a booking invariant.
	ErrInvalidInput = errors.New("invalid booking input")
	// ErrGenerationExhausted is returned when every tracking number candidate
	// collided with an existing booking.
	ErrGenerationExhausted = errors.New("could not generate a unique tracking number")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingFields) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrInvalidWeight) ||
		errors.Is(err, domain.ErrInvalidShipmentType) ||
		errors.Is(err, domain.ErrInvalidPriority) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidDate) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
