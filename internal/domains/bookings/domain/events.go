package domain

import "time"

// Event is the base interface for all booking events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
	// Key identifies the booking the event belongs to.
	Key() string
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// BookingCreated is raised once a booking has been persisted.
type BookingCreated struct {
	BaseEvent
	Booking Booking
}

// EventName returns the event type identifier.
func (e BookingCreated) EventName() string {
	return "bookings.booking.created"
}

// Key returns the tracking number.
func (e BookingCreated) Key() string {
	return e.Booking.TrackingNumber
}

// BookingStatusChanged is raised when a persisted booking moves to a new status.
type BookingStatusChanged struct {
	BaseEvent
	Booking        Booking
	PreviousStatus Status
}

// EventName returns the event type identifier.
func (e BookingStatusChanged) EventName() string {
	return "bookings.booking.status_changed"
}

// Key returns the tracking number.
func (e BookingStatusChanged) Key() string {
	return e.Booking.TrackingNumber
}
