package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bookings "github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
)

var (
	createdAt = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	updatedAt = time.Date(2024, 5, 2, 15, 30, 0, 0, time.UTC)
)

func TestProgressPercent(t *testing.T) {
	cases := map[bookings.Status]int{
		bookings.StatusBooked:         20,
		bookings.StatusProcessing:     35,
		bookings.StatusInTransit:      50,
		bookings.StatusAtWarehouse:    70,
		bookings.StatusOutForDelivery: 90,
		bookings.StatusDelivered:      100,
		"Lost":                        0,
	}
	for status, want := range cases {
		require.Equal(t, want, ProgressPercent(status), status)
	}
}

func TestBuildTimeline_InTransit(t *testing.T) {
	timeline := BuildTimeline(bookings.Booking{Status: bookings.StatusInTransit, CreatedAt: createdAt, UpdatedAt: updatedAt})
	require.Len(t, timeline, 6)

	completed := make([]bool, 0, len(timeline))
	for _, cp := range timeline {
		completed = append(completed, cp.Completed)
	}
	require.Equal(t, []bool{true, true, true, false, false, false}, completed)

	require.Equal(t, "Order Placed", timeline[0].Key)
	require.Equal(t, "Order Booked", timeline[0].Title)
	require.Equal(t, createdAt, *timeline[0].Date)
	require.Equal(t, updatedAt, *timeline[1].Date)
	require.Nil(t, timeline[2].Date)
	require.Nil(t, timeline[5].Date)
}

func TestBuildTimeline_BookedAndDelivered(t *testing.T) {
	booked := BuildTimeline(bookings.Booking{Status: bookings.StatusBooked, CreatedAt: createdAt, UpdatedAt: updatedAt})
	require.True(t, booked[0].Completed)
	require.False(t, booked[1].Completed)
	require.Nil(t, booked[1].Date)

	delivered := BuildTimeline(bookings.Booking{Status: bookings.StatusDelivered, CreatedAt: createdAt, UpdatedAt: updatedAt})
	for _, cp := range delivered {
		require.True(t, cp.Completed, cp.Key)
	}
	require.Equal(t, updatedAt, *delivered[5].Date)
	require.Equal(t, "Package has been delivered", delivered[5].Description)
}

func TestBuildTimeline_UnknownStatusOnlyFirstCompleted(t *testing.T) {
	timeline := BuildTimeline(bookings.Booking{Status: "Lost", CreatedAt: createdAt, UpdatedAt: updatedAt})
	require.True(t, timeline[0].Completed)
	for _, cp := range timeline[1:] {
		require.False(t, cp.Completed, cp.Key)
	}
}

func TestValidTrackingFormat(t *testing.T) {
	require.True(t, ValidTrackingFormat("PAN-LOYW3V28-A1B2C3D4"))
	require.True(t, ValidTrackingFormat("pan-abc-123"))
	require.False(t, ValidTrackingFormat("ABC-123"))
	require.False(t, ValidTrackingFormat("PAN--X"))
	require.False(t, ValidTrackingFormat("PAN-AB_C-1"))
}

func TestNewView(t *testing.T) {
	view := NewView(bookings.Booking{
		TrackingNumber:    "PAN-LOYW3V28-A1B2C3D4",
		Status:            bookings.StatusBooked,
		ShipmentType:      bookings.ShipmentAirFreight,
		Priority:          bookings.PriorityUrgent,
		Weight:            12.5,
		EstimatedDelivery: time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	})
	require.Equal(t, 20, view.Progress)
	require.Equal(t, "12.5 kg", view.Details.Weight)
	require.Equal(t, "N/A", view.Details.Dimensions)
	require.Equal(t, createdAt, view.Dates.LastUpdated)
	require.Len(t, view.Timeline, 6)

	require.Equal(t, "100 kg", FormatWeight(100))
}
