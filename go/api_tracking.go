package logisticsserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	trackingmapper "github.com/Apurer/pan-logistics-api/internal/domains/tracking/adapters/http/mapper"
	trackingports "github.com/Apurer/pan-logistics-api/internal/domains/tracking/ports"
	apierrors "github.com/Apurer/pan-logistics-api/internal/shared/errors"
)

// TrackingAPI serves the public shipment tracking views.
type TrackingAPI struct {
	service   trackingports.Service
	responder *apierrors.ChainedResponder
}

// NewTrackingAPI creates a TrackingAPI backed by the provided service.
func NewTrackingAPI(service trackingports.Service) TrackingAPI {
	return TrackingAPI{service: service, responder: newResponder(nil)}
}

// Get /api/tracking/:trackingNumber
// Track a shipment
func (api *TrackingAPI) TrackShipment(c *gin.Context) {
	trackingNumber := strings.TrimSpace(c.Param("trackingNumber"))
	if trackingNumber == "" {
		api.responder.BadRequest(c, "Tracking number is required")
		return
	}
	view, err := api.service.Track(c.Request.Context(), trackingNumber)
	if err != nil {
		api.responder.RespondError(c, err, "Error tracking shipment")
		return
	}
	respondOK(c, Envelope{Data: trackingmapper.FromView(view)})
}

// Get /api/tracking/validate/:trackingNumber
// Check a tracking number's format and existence
func (api *TrackingAPI) ValidateTrackingNumber(c *gin.Context) {
	result, err := api.service.Validate(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		api.responder.RespondError(c, err, "Error validating tracking number")
		return
	}
	respondOK(c, Envelope{Data: trackingmapper.FromValidation(result)})
}
