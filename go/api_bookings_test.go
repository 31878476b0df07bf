package logisticsserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingmapper "github.com/Apurer/pan-logistics-api/internal/domains/bookings/adapters/http/mapper"
)

func validBookingPayload() map[string]any {
	return map[string]any{
		"senderName":       "Jane Sender",
		"senderPhone":      "+1 416 555 0100",
		"senderEmail":      "jane@example.com",
		"senderAddress":    "1 Front St, Toronto",
		"receiverName":     "Raj Receiver",
		"receiverPhone":    "+44 20 5555 0100",
		"receiverAddress":  "10 King St, London",
		"receiverCountry":  "United Kingdom",
		"shipmentType":     "Air Freight",
		"weight":           "2",
		"cargoType":        "Documents",
		"pickupDate":       "2024-05-02",
		"deliveryPriority": "Urgent",
	}
}

func createBooking(t *testing.T, srv *testServer) bookingmapper.CreatedBooking {
	t.Helper()
	rec := srv.do(t, http.MethodPost, "/api/bookings/create", "", validBookingPayload())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	require.True(t, body.Success)
	assert.Equal(t, "Booking created successfully", body.Message)
	var created bookingmapper.CreatedBooking
	require.NoError(t, json.Unmarshal(body.Data, &created))
	return created
}

func TestCreateBooking(t *testing.T) {
	srv := newTestServer(t)

	created := createBooking(t, srv)

	assert.NotEmpty(t, created.BookingID)
	assert.Regexp(t, `^PAN-[A-Z0-9]+-[A-Z0-9]{8}$`, created.TrackingNumber)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, created.EstimatedDelivery)
}

func TestCreateBooking_MissingFields(t *testing.T) {
	srv := newTestServer(t)
	payload := validBookingPayload()
	delete(payload, "senderName")
	delete(payload, "cargoType")

	rec := srv.do(t, http.MethodPost, "/api/bookings/create", "", payload)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Missing required fields: senderName, cargoType", body.Message)
}

func TestCreateBooking_InvalidFields(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		field string
	}{
		{"email", "senderEmail", "not-an-email", "senderEmail"},
		{"shipment type", "shipmentType", "Rocket", "shipmentType"},
		{"priority", "deliveryPriority", "Whenever", "deliveryPriority"},
		{"negative weight", "weight", -4, "weight"},
		{"weight below minimum", "weight", 0.05, "weight"},
		{"weight string below minimum", "weight", "0.09", "weight"},
		{"date", "pickupDate", "02/05/2024", "pickupDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			payload := validBookingPayload()
			payload[tt.key] = tt.value

			rec := srv.do(t, http.MethodPost, "/api/bookings/create", "", payload)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			body := decode(t, rec)
			assert.Equal(t, "Validation failed", body.Message)
			require.Len(t, body.Errors, 1)
			assert.Contains(t, string(body.Errors[0]), `"field":"`+tt.field+`"`)
		})
	}
}

func TestGetBookingByTrackingNumber(t *testing.T) {
	srv := newTestServer(t)
	created := createBooking(t, srv)

	rec := srv.do(t, http.MethodGet, "/api/bookings/"+created.TrackingNumber, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		Booking bookingmapper.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.Equal(t, created.BookingID, data.Booking.ID)
	assert.Equal(t, "Booked", data.Booking.Status)
	assert.Nil(t, data.Booking.SenderCompany)

	rec = srv.do(t, http.MethodGet, "/api/bookings/PAN-NOPE-00000000", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Booking not found", decode(t, rec).Message)
}

func TestListBookingsAndStats(t *testing.T) {
	srv := newTestServer(t)
	staff := srv.login(t, "staff@pan.test", "staff")
	for i := 0; i < 3; i++ {
		createBooking(t, srv)
	}

	rec := srv.do(t, http.MethodGet, "/api/bookings?page=2&limit=2", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	var rows []bookingmapper.Booking
	require.NoError(t, json.Unmarshal(body.Data, &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, &Pagination{Page: 2, Limit: 2, Total: 3, TotalPages: 2}, body.Pagination)

	rec = srv.do(t, http.MethodGet, "/api/bookings/stats", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Stats bookingmapper.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &stats))
	assert.Equal(t, bookingmapper.Stats{Total: 3, Pending: 3}, stats.Stats)
}

func TestUpdateBookingStatus(t *testing.T) {
	srv := newTestServer(t)
	staff := srv.login(t, "staff@pan.test", "staff")
	created := createBooking(t, srv)

	rec := srv.do(t, http.MethodPut, "/api/bookings/"+created.BookingID+"/status", staff, map[string]string{"status": "Teleported"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status", decode(t, rec).Message)

	rec = srv.do(t, http.MethodPut, "/api/bookings/"+created.BookingID+"/status", staff, map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status", decode(t, rec).Message)

	rec = srv.do(t, http.MethodPut, "/api/bookings/"+created.BookingID+"/status", staff, map[string]string{"status": "In Transit"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Status updated successfully", decode(t, rec).Message)

	rec = srv.do(t, http.MethodGet, "/api/bookings/"+created.TrackingNumber, "", nil)
	assert.Contains(t, rec.Body.String(), `"status":"In Transit"`)

	rec = srv.do(t, http.MethodPut, "/api/bookings/missing/status", staff, map[string]string{"status": "Delivered"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateBooking(t *testing.T) {
	srv := newTestServer(t)
	staff := srv.login(t, "staff@pan.test", "staff")
	created := createBooking(t, srv)

	rec := srv.do(t, http.MethodPut, "/api/bookings/"+created.BookingID, staff, map[string]any{
		"receiver_name":   "New Receiver",
		"tracking_number": "PAN-HACK-00000000",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Booking updated successfully", decode(t, rec).Message)

	rec = srv.do(t, http.MethodGet, "/api/bookings/"+created.TrackingNumber, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"receiver_name":"New Receiver"`)
}

func TestDeleteBooking_AdminOnly(t *testing.T) {
	srv := newTestServer(t)
	staff := srv.login(t, "staff@pan.test", "staff")
	admin := srv.login(t, "admin@pan.test", "admin")
	created := createBooking(t, srv)

	rec := srv.do(t, http.MethodDelete, "/api/bookings/"+created.BookingID, staff, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/bookings/"+created.BookingID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Booking deleted successfully", decode(t, rec).Message)

	rec = srv.do(t, http.MethodDelete, "/api/bookings/"+created.BookingID, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
