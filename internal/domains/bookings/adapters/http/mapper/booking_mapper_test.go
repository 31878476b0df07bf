package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
)

func TestWeight_AcceptsNumbersAndStrings(t *testing.T) {
	var payload CreateBooking
	require.NoError(t, json.Unmarshal([]byte(`{"weight":"12.5"}`), &payload))
	require.Equal(t, Weight(12.5), payload.Weight)

	require.NoError(t, json.Unmarshal([]byte(`{"weight":3}`), &payload))
	require.Equal(t, Weight(3), payload.Weight)

	require.NoError(t, json.Unmarshal([]byte(`{"weight":""}`), &payload))
	require.Zero(t, payload.Weight)

	require.Error(t, json.Unmarshal([]byte(`{"weight":"heavy"}`), &payload))
}

func TestUpdateBooking_IgnoresImmutableColumns(t *testing.T) {
	var payload UpdateBooking
	body := `{"id":"x","tracking_number":"PAN-X-Y","created_at":"2020-01-01","receiver_name":"New","weight":"4"}`
	require.NoError(t, json.Unmarshal([]byte(body), &payload))

	input := ToUpdateInput(payload)
	require.Equal(t, "New", *input.ReceiverName)
	require.Equal(t, 4.0, *input.Weight)
	require.Nil(t, input.SenderName)
	require.Nil(t, input.Status)
}

func TestFromDomain_RendersRow(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	b := &domain.Booking{
		ID:                "b-1",
		TrackingNumber:    "PAN-LOYW3V28-A1B2C3D4",
		Sender:            domain.Sender{Name: "Jane"},
		ShipmentType:      domain.ShipmentAirFreight,
		Priority:          domain.PriorityUrgent,
		PickupDate:        time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		EstimatedDelivery: time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
		Status:            domain.StatusBooked,
		CreatedAt:         created,
		UpdatedAt:         created,
	}
	row := FromDomain(b)
	require.Equal(t, "2024-05-02", row.PickupDate)
	require.Equal(t, "2024-05-04", row.EstimatedDelivery)
	require.Equal(t, "2024-05-01T09:30:00.000Z", row.CreatedAt)
	require.Nil(t, row.SenderCompany)
	require.Nil(t, row.Dimensions)

	encoded, err := json.Marshal(row)
	require.NoError(t, err)
	require.Contains(t, string(encoded), `"sender_company":null`)

	created2 := ToCreated(b)
	require.Equal(t, CreatedBooking{BookingID: "b-1", TrackingNumber: "PAN-LOYW3V28-A1B2C3D4", EstimatedDelivery: "2024-05-04"}, created2)
}

func TestFromStatistics(t *testing.T) {
	stats := FromStatistics(domain.Statistics{Total: 4, Delivered: 1, InTransit: 1, Pending: 1})
	encoded, err := json.Marshal(stats)
	require.NoError(t, err)
	require.JSONEq(t, `{"total":4,"delivered":1,"in_transit":1,"pending":1}`, string(encoded))
}
