package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/pan-logistics-api/internal/domains/users/domain"
	"github.com/Apurer/pan-logistics-api/internal/domains/users/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrAuthentication wraps authentication failures.
	ErrAuthentication = errors.New("authentication failed")
	// ErrConflict wraps uniqueness violations.
	ErrConflict = errors.New("user conflict")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrSelfDelete         = errors.New("cannot delete your own account")
	// ErrUserGone is returned by Authenticate when the token subject was deleted.
	ErrUserGone = errors.New("token subject no longer exists")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingFields) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrWeakPassword) ||
		errors.Is(err, domain.ErrLongPassword) ||
		errors.Is(err, domain.ErrInvalidRole) ||
		errors.Is(err, ErrIncorrectPassword) ||
		errors.Is(err, ErrSelfDelete) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrUserGone) ||
		errors.Is(err, ports.ErrInvalidToken) ||
		errors.Is(err, ports.ErrTokenExpired) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	if errors.Is(err, ports.ErrDuplicateEmail) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
