package domain

import (
	"regexp"
	"time"

	bookings "github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
)

var trackingFormat = regexp.MustCompile(`(?i)^PAN-[A-Z0-9]+-[A-Z0-9]+$`)

// ValidTrackingFormat reports whether s looks like a tracking number.
func ValidTrackingFormat(s string) bool {
	return trackingFormat.MatchString(s)
}

var progress = map[bookings.Status]int{
	bookings.StatusBooked:         20,
	bookings.StatusProcessing:     35,
	bookings.StatusInTransit:      50,
	bookings.StatusAtWarehouse:    70,
	bookings.StatusOutForDelivery: 90,
	bookings.StatusDelivered:      100,
}

// ProgressPercent maps a status to a completion percentage; unknown is 0.
func ProgressPercent(status bookings.Status) int {
	return progress[status]
}

// Checkpoint is one step of a shipment timeline.
type Checkpoint struct {
	Key         string
	Title       string
	Description string
	Completed   bool
	Date        *time.Time
}

type checkpointDef struct {
	key         string
	title       string
	description string
	status      bookings.Status
}

var checkpoints = []checkpointDef{
	{"Order Placed", "Order Booked", "Shipment order has been confirmed", bookings.StatusBooked},
	{"Processing", "Processing", "Shipment is being processed", bookings.StatusProcessing},
	{"In Transit", "In Transit", "Package is on its way", bookings.StatusInTransit},
	{"At Warehouse", "At Warehouse", "Package arrived at distribution center", bookings.StatusAtWarehouse},
	{"Out for Delivery", "Out for Delivery", "Package is out for final delivery", bookings.StatusOutForDelivery},
	{"Delivered", "Delivered", "Package has been delivered", bookings.StatusDelivered},
}

// BuildTimeline derives the six checkpoints from the booking's current status.
// Only booking, first movement and delivery carry dates.
func BuildTimeline(b bookings.Booking) []Checkpoint {
	current := b.Status.Index()
	timeline := make([]Checkpoint, 0, len(checkpoints))
	for i, def := range checkpoints {
		cp := Checkpoint{
			Key:         def.key,
			Title:       def.title,
			Description: def.description,
			Completed:   i == 0 || current >= i,
		}
		switch def.status {
		case bookings.StatusBooked:
			cp.Date = timePtr(b.CreatedAt)
		case bookings.StatusProcessing:
			if b.Status != bookings.StatusBooked {
				cp.Date = timePtr(b.UpdatedAt)
			}
		case bookings.StatusDelivered:
			if b.Status == bookings.StatusDelivered {
				cp.Date = timePtr(b.UpdatedAt)
			}
		}
		timeline = append(timeline, cp)
	}
	return timeline
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
