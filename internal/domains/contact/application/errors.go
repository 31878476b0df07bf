package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/pan-logistics-api/internal/domains/contact/domain"
)

// ErrInvalidInput signals the submission violated a message invariant.
var ErrInvalidInput = errors.New("invalid contact message")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingFields) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrFieldTooLong) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
