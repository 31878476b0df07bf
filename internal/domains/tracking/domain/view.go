package domain

import (
	"strconv"
	"time"

	bookings "github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
)

// ShipmentDetails summarises the cargo for display.
type ShipmentDetails struct {
	Type       string
	CargoType  string
	Weight     string
	Dimensions string
	Priority   string
}

// Dates groups the schedule of a shipment.
type Dates struct {
	Pickup            time.Time
	EstimatedDelivery time.Time
	LastUpdated       time.Time
}

// View is the public read model of a shipment.
type View struct {
	TrackingNumber string
	Status         bookings.Status
	Progress       int
	Details        ShipmentDetails
	Sender         bookings.Sender
	Receiver       bookings.Receiver
	Dates          Dates
	Timeline       []Checkpoint
}

// NewView projects a booking.
func NewView(b bookings.Booking) View {
	dimensions := b.Dimensions
	if dimensions == "" {
		dimensions = "N/A"
	}
	return View{
		TrackingNumber: b.TrackingNumber,
		Status:         b.Status,
		Progress:       ProgressPercent(b.Status),
		Details: ShipmentDetails{
			Type:       string(b.ShipmentType),
			CargoType:  b.CargoType,
			Weight:     FormatWeight(b.Weight),
			Dimensions: dimensions,
			Priority:   string(b.Priority),
		},
		Sender:   b.Sender,
		Receiver: b.Receiver,
		Dates: Dates{
			Pickup:            b.PickupDate,
			EstimatedDelivery: b.EstimatedDelivery,
			LastUpdated:       b.UpdatedAt,
		},
		Timeline: BuildTimeline(b),
	}
}

// FormatWeight renders kilograms with the shortest exact decimal, e.g. "12.5 kg".
func FormatWeight(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64) + " kg"
}

// Validation is the answer to a tracking number check.
type Validation struct {
	Valid   bool
	Exists  bool
	Message string
}

const (
	MessageInvalidFormat = "Invalid tracking number format"
	MessageFound         = "Tracking number found"
	MessageNotFound      = "Tracking number not found"
)
