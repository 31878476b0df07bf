package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Apurer/pan-logistics-api/internal/shared/validate"
)

// Kind selects the template and subject of a notification.
type Kind string

const (
	KindBookingConfirmation Kind = "booking_confirmation"
	KindStatusUpdate        Kind = "status_update"
	KindContactConfirmation Kind = "contact_confirmation"
)

var (
	ErrUnknownKind      = errors.New("unknown notification kind")
	ErrInvalidRecipient = errors.New("notification recipient is not a valid email address")
	ErrMissingDetails   = errors.New("notification details are missing")
)

// Shipment is the booking snapshot rendered into shipment emails.
type Shipment struct {
	TrackingNumber    string    `json:"trackingNumber"`
	SenderName        string    `json:"senderName"`
	ReceiverName      string    `json:"receiverName"`
	ReceiverCountry   string    `json:"receiverCountry"`
	ShipmentType      string    `json:"shipmentType"`
	Priority          string    `json:"priority"`
	Status            string    `json:"status"`
	PreviousStatus    string    `json:"previousStatus,omitempty"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
}

// Inquiry is the contact message snapshot rendered into the confirmation.
type Inquiry struct {
	Name    string `json:"name"`
	Subject string `json:"subject,omitempty"`
}

// Notification is one email to be sent. It travels through Temporal as JSON.
type Notification struct {
	Kind     Kind      `json:"kind"`
	To       string    `json:"to"`
	Shipment *Shipment `json:"shipment,omitempty"`
	Inquiry  *Inquiry  `json:"inquiry,omitempty"`
}

// Subject returns the email subject line for n.
func (n Notification) Subject() string {
	switch n.Kind {
	case KindBookingConfirmation:
		return fmt.Sprintf("Booking Confirmed - Tracking #%s", n.trackingNumber())
	case KindStatusUpdate:
		return fmt.Sprintf("Shipment Update - %s", n.trackingNumber())
	case KindContactConfirmation:
		return "Message Received - Pan Logistics"
	}
	return ""
}

// Validate checks that n can be rendered and delivered.
func (n Notification) Validate() error {
	if !validate.Email(strings.TrimSpace(n.To)) {
		return ErrInvalidRecipient
	}
	switch n.Kind {
	case KindBookingConfirmation, KindStatusUpdate:
		if n.Shipment == nil || n.Shipment.TrackingNumber == "" {
			return ErrMissingDetails
		}
	case KindContactConfirmation:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, n.Kind)
	}
	return nil
}

func (n Notification) trackingNumber() string {
	if n.Shipment == nil {
		return ""
	}
	return n.Shipment.TrackingNumber
}

// Email is a rendered message ready for a mailer.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}
