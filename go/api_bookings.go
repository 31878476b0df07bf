package logisticsserver

import (
	"strconv"

	"github.com/gin-gonic/gin"

	bookingmapper "github.com/Apurer/pan-logistics-api/internal/domains/bookings/adapters/http/mapper"
	bookingtypes "github.com/Apurer/pan-logistics-api/internal/domains/bookings/application/types"
	bookingports "github.com/Apurer/pan-logistics-api/internal/domains/bookings/ports"
	apierrors "github.com/Apurer/pan-logistics-api/internal/shared/errors"
)

// BookingsAPI exposes the booking lifecycle over HTTP.
type BookingsAPI struct {
	service   bookingports.Service
	responder *apierrors.ChainedResponder
}

// NewBookingsAPI creates a BookingsAPI backed by the provided service.
func NewBookingsAPI(service bookingports.Service) BookingsAPI {
	return BookingsAPI{service: service, responder: newResponder(nil)}
}

// Post /api/bookings/create
// Book a shipment
func (api *BookingsAPI) CreateBooking(c *gin.Context) {
	var payload bookingmapper.CreateBooking
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	booking, err := api.service.Create(c.Request.Context(), bookingmapper.ToCreateInput(payload))
	if err != nil {
		api.responder.RespondError(c, err, "Error creating booking")
		return
	}
	respondCreated(c, Envelope{
		Message: "Booking created successfully",
		Data:    bookingmapper.ToCreated(booking),
	})
}

// Get /api/bookings/:id
// Find a booking by tracking number
func (api *BookingsAPI) GetBookingByTrackingNumber(c *gin.Context) {
	booking, err := api.service.GetByTrackingNumber(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.responder.RespondError(c, err, "Error retrieving booking")
		return
	}
	respondOK(c, Envelope{Data: gin.H{"booking": bookingmapper.FromDomain(booking)}})
}

// Get /api/bookings
// List bookings, newest first
func (api *BookingsAPI) ListBookings(c *gin.Context) {
	page, err := api.service.List(c.Request.Context(), bookingtypes.ListBookingsQuery{
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		api.responder.RespondError(c, err, "Error retrieving bookings")
		return
	}
	respondOK(c, Envelope{
		Data:       bookingmapper.FromDomainList(page.Items),
		Pagination: paginationOf(page),
	})
}

// Get /api/bookings/stats
// Tally bookings by lifecycle bucket
func (api *BookingsAPI) GetBookingStats(c *gin.Context) {
	stats, err := api.service.Statistics(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err, "Error retrieving statistics")
		return
	}
	respondOK(c, Envelope{Data: gin.H{"stats": bookingmapper.FromStatistics(stats)}})
}

// Put /api/bookings/:id/status
// Move a booking to a new status
func (api *BookingsAPI) UpdateBookingStatus(c *gin.Context) {
	var payload bookingmapper.UpdateStatus
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, "Invalid status")
		return
	}
	if _, err := api.service.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status); err != nil {
		api.responder.RespondError(c, err, "Error updating status")
		return
	}
	respondOK(c, Envelope{Message: "Status updated successfully"})
}

// Put /api/bookings/:id
// Edit booking fields
func (api *BookingsAPI) UpdateBooking(c *gin.Context) {
	var payload bookingmapper.UpdateBooking
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	if _, err := api.service.Update(c.Request.Context(), c.Param("id"), bookingmapper.ToUpdateInput(payload)); err != nil {
		api.responder.RespondError(c, err, "Error updating booking")
		return
	}
	respondOK(c, Envelope{Message: "Booking updated successfully"})
}

// Delete /api/bookings/:id
// Remove a booking
func (api *BookingsAPI) DeleteBooking(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		api.responder.RespondError(c, err, "Error deleting booking")
		return
	}
	respondOK(c, Envelope{Message: "Booking deleted successfully"})
}

// queryInt reads a positive integer query parameter; anything else is 0 so
// the service applies its default.
func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 0 {
		return 0
	}
	return value
}
