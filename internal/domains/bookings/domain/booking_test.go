package domain

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validBooking() *Booking {
	return &Booking{
		Sender: Sender{
			Name:    "Jane Sender",
			Phone:   "+1 416 555 0100",
			Email:   "jane@example.com",
			Address: "1 Front St, Toronto",
		},
		Receiver: Receiver{
			Name:    "Raj Receiver",
			Phone:   "+44 20 5555 0100",
			Address: "10 King St, London",
			Country: "United Kingdom",
		},
		ShipmentType: ShipmentAirFreight,
		Weight:       12.5,
		CargoType:    "Electronics",
		PickupDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Priority:     PriorityUrgent,
	}
}

func TestEstimateDelivery_Table(t *testing.T) {
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
	cases := []struct {
		shipment ShipmentType
		priority Priority
		days     int
	}{
		{ShipmentAirFreight, PriorityUrgent, 3},
		{ShipmentAirFreight, PriorityExpress, 5},
		{ShipmentAirFreight, PriorityStandard, 7},
		{ShipmentSeaFreight, PriorityUrgent, 14},
		{ShipmentSeaFreight, PriorityExpress, 21},
		{ShipmentSeaFreight, PriorityStandard, 30},
		{ShipmentLandTransport, PriorityUrgent, 1},
		{ShipmentLandTransport, PriorityExpress, 3},
		{ShipmentLandTransport, PriorityStandard, 5},
		{ShipmentType("Rail"), PriorityUrgent, 7},
		{ShipmentType("Rail"), PriorityStandard, 7},
		{ShipmentAirFreight, Priority("Whenever"), 7},
	}
	for _, tc := range cases {
		got := EstimateDelivery(tc.shipment, tc.priority, now)
		want := time.Date(2024, 5, 1+tc.days, 0, 0, 0, 0, time.UTC)
		require.Equal(t, want, got, "%s/%s", tc.shipment, tc.priority)
	}
}

func TestEstimateDelivery_DropsTimeOfDay(t *testing.T) {
	now := time.Date(2024, 12, 30, 23, 59, 59, 0, time.UTC)
	got := EstimateDelivery(ShipmentLandTransport, PriorityExpress, now)
	require.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestTrackingNumberGenerator_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^PAN-[A-Z0-9]+-[A-Z0-9]+$`)
	g := NewTrackingNumberGenerator()
	for i := 0; i < 50; i++ {
		require.Regexp(t, pattern, g.Next())
	}
}

func TestTrackingNumberGenerator_Deterministic(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	g := NewTrackingNumberGenerator(
		WithGeneratorClock(func() time.Time { return fixed }),
		WithRandomToken(func() string { return "a1b2c3d4" }),
	)
	require.Equal(t, "PAN-LOYW3V28-A1B2C3D4", g.Next())
}

func TestNormalizeTrackingNumber(t *testing.T) {
	require.Equal(t, "PAN-ABC-123", NormalizeTrackingNumber("  pan-abc-123 "))
}

func TestBookingValidate_Valid(t *testing.T) {
	b := validBooking()
	require.NoError(t, b.Validate())
}

func TestBookingValidate_ListsMissingFieldsInOrder(t *testing.T) {
	b := validBooking()
	b.Sender.Phone = "  "
	b.Receiver.Country = ""
	b.Weight = 0
	b.PickupDate = time.Time{}

	err := b.Validate()
	require.ErrorIs(t, err, ErrMissingFields)
	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, []string{"senderPhone", "receiverCountry", "weight", "pickupDate"}, missing.Fields)
	require.Equal(t, "Missing required fields: senderPhone, receiverCountry, weight, pickupDate", err.Error())
}

func TestBookingValidate_FieldRules(t *testing.T) {
	b := validBooking()
	b.Sender.Email = "not-an-email"
	require.ErrorIs(t, b.Validate(), ErrInvalidEmail)

	for _, weight := range []float64{-1, 0.05, 0.099} {
		b = validBooking()
		b.Weight = weight
		require.ErrorIs(t, b.Validate(), ErrInvalidWeight, "weight %v", weight)
	}

	b = validBooking()
	b.Weight = MinWeight
	require.NoError(t, b.Validate())

	b = validBooking()
	b.ShipmentType = "Rail"
	require.ErrorIs(t, b.Validate(), ErrInvalidShipmentType)

	b = validBooking()
	b.Priority = "Overnight"
	require.ErrorIs(t, b.Validate(), ErrInvalidPriority)

	b = validBooking()
	b.Status = "Lost"
	require.ErrorIs(t, b.Validate(), ErrInvalidStatus)
}

func TestBookingNormalize(t *testing.T) {
	b := validBooking()
	b.Sender.Email = "  Jane@Example.COM "
	b.Sender.Name = "  Jane  "
	b.TrackingNumber = " pan-x-y "
	b.Normalize()
	require.Equal(t, "jane@example.com", b.Sender.Email)
	require.Equal(t, "Jane", b.Sender.Name)
	require.Equal(t, "PAN-X-Y", b.TrackingNumber)
}

func TestBookingUpdateStatus_Permissive(t *testing.T) {
	b := validBooking()
	b.Status = StatusDelivered
	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	changed, err := b.UpdateStatus(StatusBooked, at)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, StatusBooked, b.Status)
	require.Equal(t, at, b.UpdatedAt)

	changed, err = b.UpdateStatus(StatusBooked, at)
	require.NoError(t, err)
	require.False(t, changed)

	_, err = b.UpdateStatus("Lost", at)
	require.ErrorIs(t, err, ErrInvalidStatus)
	require.Equal(t, StatusBooked, b.Status)
}

func TestStatusIndex(t *testing.T) {
	require.Equal(t, 0, StatusBooked.Index())
	require.Equal(t, 5, StatusDelivered.Index())
	require.Equal(t, -1, Status("Lost").Index())
	require.False(t, Status("").Valid())
}

func TestTally_PreservesBucketGap(t *testing.T) {
	stats := Tally([]Status{
		StatusBooked, StatusProcessing, StatusInTransit,
		StatusAtWarehouse, StatusOutForDelivery, StatusDelivered,
	})
	require.Equal(t, Statistics{Total: 6, Delivered: 1, InTransit: 1, Pending: 2}, stats)
}

func TestFromCounts(t *testing.T) {
	stats := FromCounts(map[Status]int{
		StatusBooked:         3,
		StatusInTransit:      2,
		StatusOutForDelivery: 4,
		Status("Legacy"):     1,
	})
	require.Equal(t, Statistics{Total: 10, InTransit: 2, Pending: 3}, stats)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-05-01")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2024-05-01T10:00:00+02:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("")
	require.NoError(t, err)
	require.True(t, got.IsZero())

	_, err = ParseDate("01/05/2024")
	require.ErrorIs(t, err, ErrInvalidDate)
}
