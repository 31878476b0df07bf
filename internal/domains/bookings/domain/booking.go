package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Apurer/pan-logistics-api/internal/shared/validate"
)

// ShipmentType is the transport mode of a booking.
type ShipmentType string

const (
	ShipmentAirFreight    ShipmentType = "Air Freight"
	ShipmentSeaFreight    ShipmentType = "Sea Freight"
	ShipmentLandTransport ShipmentType = "Land Transport"
)

// Valid reports whether t is a known shipment type.
func (t ShipmentType) Valid() bool {
	switch t {
	case ShipmentAirFreight, ShipmentSeaFreight, ShipmentLandTransport:
		return true
	}
	return false
}

// Priority is the requested delivery speed.
type Priority string

const (
	PriorityStandard Priority = "Standard"
	PriorityExpress  Priority = "Express"
	PriorityUrgent   Priority = "Urgent"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityStandard, PriorityExpress, PriorityUrgent:
		return true
	}
	return false
}

// Status is the lifecycle state of a shipment.
type Status string

const (
	StatusBooked         Status = "Booked"
	StatusProcessing     Status = "Processing"
	StatusInTransit      Status = "In Transit"
	StatusAtWarehouse    Status = "At Warehouse"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusDelivered      Status = "Delivered"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusBooked,
	StatusProcessing,
	StatusInTransit,
	StatusAtWarehouse,
	StatusOutForDelivery,
	StatusDelivered,
}

// Index returns the position of s in the lifecycle, or -1 when unknown.
func (s Status) Index() int {
	for i, candidate := range Statuses {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s belongs to the lifecycle.
func (s Status) Valid() bool {
	return s.Index() >= 0
}

// MinWeight is the lightest shipment accepted, in kilograms.
const MinWeight = 0.1

var (
	ErrMissingFields       = errors.New("missing required fields")
	ErrInvalidEmail        = errors.New("sender email is invalid")
	ErrInvalidWeight       = errors.New("weight must be at least 0.1 kg")
	ErrInvalidShipmentType = errors.New("shipment type is invalid")
	ErrInvalidPriority     = errors.New("delivery priority is invalid")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidDate         = errors.New("dates must use ISO-8601 (YYYY-MM-DD)")
)

// MissingFieldsError lists the required request fields that were blank.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("Missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Is lets callers match with errors.Is(err, ErrMissingFields).
func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}

// Sender is the party handing the shipment over.
type Sender struct {
	Name    string
	Company string
	Phone   string
	Email   string
	Address string
}

// Receiver is the destination party.
type Receiver struct {
	Name    string
	Phone   string
	Address string
	Country string
}

// Booking is the shipment aggregate.
type Booking struct {
	ID                  string
	TrackingNumber      string
	Sender              Sender
	Receiver            Receiver
	ShipmentType        ShipmentType
	Weight              float64
	CargoType           string
	Dimensions          string
	SpecialInstructions string
	PickupDate          time.Time
	Priority            Priority
	EstimatedDelivery   time.Time
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Normalize trims free-text fields and canonicalizes the sender email.
func (b *Booking) Normalize() {
	b.TrackingNumber = strings.ToUpper(strings.TrimSpace(b.TrackingNumber))
	b.Sender.Name = strings.TrimSpace(b.Sender.Name)
	b.Sender.Company = strings.TrimSpace(b.Sender.Company)
	b.Sender.Phone = strings.TrimSpace(b.Sender.Phone)
	b.Sender.Email = validate.NormalizeEmail(b.Sender.Email)
	b.Sender.Address = strings.TrimSpace(b.Sender.Address)
	b.Receiver.Name = strings.TrimSpace(b.Receiver.Name)
	b.Receiver.Phone = strings.TrimSpace(b.Receiver.Phone)
	b.Receiver.Address = strings.TrimSpace(b.Receiver.Address)
	b.Receiver.Country = strings.TrimSpace(b.Receiver.Country)
	b.CargoType = strings.TrimSpace(b.CargoType)
	b.Dimensions = strings.TrimSpace(b.Dimensions)
	b.SpecialInstructions = strings.TrimSpace(b.SpecialInstructions)
}

// Validate enforces the aggregate invariants. Presence of required fields is
// checked first so callers get the complete list of blanks.
func (b *Booking) Validate() error {
	if missing := b.missingFields(); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	if !validate.Email(b.Sender.Email) {
		return ErrInvalidEmail
	}
	if b.Weight < MinWeight {
		return ErrInvalidWeight
	}
	if !b.ShipmentType.Valid() {
		return ErrInvalidShipmentType
	}
	if !b.Priority.Valid() {
		return ErrInvalidPriority
	}
	if b.Status != "" && !b.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (b *Booking) missingFields() []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("senderName", b.Sender.Name)
	check("senderPhone", b.Sender.Phone)
	check("senderEmail", b.Sender.Email)
	check("senderAddress", b.Sender.Address)
	check("receiverName", b.Receiver.Name)
	check("receiverPhone", b.Receiver.Phone)
	check("receiverAddress", b.Receiver.Address)
	check("receiverCountry", b.Receiver.Country)
	check("shipmentType", string(b.ShipmentType))
	if b.Weight == 0 {
		missing = append(missing, "weight")
	}
	check("cargoType", b.CargoType)
	if b.PickupDate.IsZero() {
		missing = append(missing, "pickupDate")
	}
	check("deliveryPriority", string(b.Priority))
	return missing
}

// UpdateStatus moves the booking to status. Any known status may follow any
// other. It reports whether the status actually changed.
func (b *Booking) UpdateStatus(status Status, at time.Time) (bool, error) {
	if !status.Valid() {
		return false, ErrInvalidStatus
	}
	changed := b.Status != status
	b.Status = status
	b.UpdatedAt = at
	return changed, nil
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp. Blank input yields
// the zero time.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}
