package logisticsserver

import (
	"github.com/gin-gonic/gin"

	contactmapper "github.com/Apurer/pan-logistics-api/internal/domains/contact/adapters/http/mapper"
	contacttypes "github.com/Apurer/pan-logistics-api/internal/domains/contact/application/types"
	contactports "github.com/Apurer/pan-logistics-api/internal/domains/contact/ports"
	apierrors "github.com/Apurer/pan-logistics-api/internal/shared/errors"
)

// ContactAPI serves the contact form and the staff inbox.
type ContactAPI struct {
	service   contactports.Service
	responder *apierrors.ChainedResponder
}

// NewContactAPI creates a ContactAPI backed by the provided service.
func NewContactAPI(service contactports.Service) ContactAPI {
	return ContactAPI{service: service, responder: newResponder(nil)}
}

// Post /api/contact
// Submit a contact message
func (api *ContactAPI) SubmitMessage(c *gin.Context) {
	var payload contactmapper.SubmitMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, api.responder, err)
		return
	}
	message, err := api.service.Submit(c.Request.Context(), contactmapper.ToSubmitInput(payload))
	if err != nil {
		api.responder.RespondError(c, err, "Error submitting message")
		return
	}
	respondCreated(c, Envelope{
		Message: "Message sent successfully. We will get back to you soon.",
		Data:    contactmapper.Submitted{MessageID: message.ID},
	})
}

// Get /api/contact/messages
// List messages, newest first
func (api *ContactAPI) ListMessages(c *gin.Context) {
	page, err := api.service.List(c.Request.Context(), contacttypes.ListMessagesQuery{
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
		UnreadOnly: c.Query("unread") == "true",
	})
	if err != nil {
		api.responder.RespondError(c, err, "Error retrieving messages")
		return
	}
	respondOK(c, Envelope{
		Data:       contactmapper.FromDomainList(page.Items),
		Pagination: paginationOf(page),
	})
}

// Get /api/contact/unread-count
// Count unread messages
func (api *ContactAPI) UnreadCount(c *gin.Context) {
	count, err := api.service.UnreadCount(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err, "Error retrieving unread count")
		return
	}
	respondOK(c, Envelope{Data: contactmapper.UnreadCount{Count: count}})
}

// Put /api/contact/messages/:id/read
// Mark a message as read
func (api *ContactAPI) MarkAsRead(c *gin.Context) {
	if err := api.service.MarkAsRead(c.Request.Context(), c.Param("id")); err != nil {
		api.responder.RespondError(c, err, "Error marking message as read")
		return
	}
	respondOK(c, Envelope{Message: "Message marked as read"})
}

// Delete /api/contact/messages/:id
// Remove a message
func (api *ContactAPI) DeleteMessage(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		api.responder.RespondError(c, err, "Error deleting message")
		return
	}
	respondOK(c, Envelope{Message: "Message deleted successfully"})
}
