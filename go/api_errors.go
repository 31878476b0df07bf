package logisticsserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	bookingsapp "github.com/Apurer/pan-logistics-api/internal/domains/bookings/application"
	bookingdomain "github.com/Apurer/pan-logistics-api/internal/domains/bookings/domain"
	bookingports "github.com/Apurer/pan-logistics-api/internal/domains/bookings/ports"
	contactapp "github.com/Apurer/pan-logistics-api/internal/domains/contact/application"
	contactdomain "github.com/Apurer/pan-logistics-api/internal/domains/contact/domain"
	contactports "github.com/Apurer/pan-logistics-api/internal/domains/contact/ports"
	trackingports "github.com/Apurer/pan-logistics-api/internal/domains/tracking/ports"
	usersapp "github.com/Apurer/pan-logistics-api/internal/domains/users/application"
	userdomain "github.com/Apurer/pan-logistics-api/internal/domains/users/domain"
	userports "github.com/Apurer/pan-logistics-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/pan-logistics-api/internal/shared/errors"
)

const (
	msgBookingNotFound    = "Booking not found"
	msgShipmentNotFound   = "Shipment not found. Please check your tracking number."
	msgMessageNotFound    = "Message not found"
	msgUserNotFound       = "User not found"
	msgInvalidCredentials = "Invalid email or password"
	msgUserExists         = "User already exists"
	msgIncorrectPassword  = "Current password is incorrect"
)

// newResponder builds the responder shared by every handler. Mappers run in
// order and the first match wins.
func newResponder(logger *slog.Logger) *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder(logger,
		bookingErrors,
		trackingErrors,
		contactErrors,
		userErrors,
	)
}

func bookingErrors(err error) (apierrors.ProblemDetail, bool) {
	var missing *bookingdomain.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		return apierrors.ErrBadRequest.WithDetail(missing.Error()), true
	case errors.Is(err, bookingdomain.ErrInvalidStatus):
		return apierrors.ErrBadRequest.WithDetail("Invalid status"), true
	case errors.Is(err, bookingsapp.ErrInvalidInput):
		return apierrors.NewValidationProblem(bookingFieldErrors(err)), true
	case errors.Is(err, bookingports.ErrNotFound):
		return apierrors.NewNotFoundProblem(msgBookingNotFound), true
	case errors.Is(err, bookingsapp.ErrGenerationExhausted):
		return apierrors.ErrConflict.WithDetail("Could not allocate a tracking number, please retry"), true
	}
	return apierrors.ProblemDetail{}, false
}

func bookingFieldErrors(err error) []apierrors.FieldError {
	switch {
	case errors.Is(err, bookingdomain.ErrInvalidEmail):
		return []apierrors.FieldError{{Field: "senderEmail", Message: "Invalid sender email"}}
	case errors.Is(err, bookingdomain.ErrInvalidWeight):
		return []apierrors.FieldError{{Field: "weight", Message: "Weight must be at least 0.1 kg"}}
	case errors.Is(err, bookingdomain.ErrInvalidShipmentType):
		return []apierrors.FieldError{{Field: "shipmentType", Message: "Invalid shipment type"}}
	case errors.Is(err, bookingdomain.ErrInvalidPriority):
		return []apierrors.FieldError{{Field: "deliveryPriority", Message: "Invalid delivery priority"}}
	case errors.Is(err, bookingdomain.ErrInvalidDate):
		return []apierrors.FieldError{{Field: "pickupDate", Message: "Invalid pickup date"}}
	}
	return nil
}

func trackingErrors(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, trackingports.ErrShipmentNotFound) {
		return apierrors.NewNotFoundProblem(msgShipmentNotFound), true
	}
	return apierrors.ProblemDetail{}, false
}

func contactErrors(err error) (apierrors.ProblemDetail, bool) {
	var tooLong *contactdomain.FieldTooLongError
	switch {
	case errors.Is(err, contactdomain.ErrMissingFields):
		return apierrors.ErrBadRequest.WithDetail("Please provide name, email and message"), true
	case errors.Is(err, contactdomain.ErrInvalidEmail):
		return apierrors.ErrBadRequest.WithDetail("Please provide a valid email address"), true
	case errors.As(err, &tooLong):
		return apierrors.NewValidationProblem([]apierrors.FieldError{{
			Field:   tooLong.Field,
			Message: fmt.Sprintf("%s must be less than %d characters", capitalize(tooLong.Field), tooLong.Max),
		}}), true
	case errors.Is(err, contactapp.ErrInvalidInput):
		return apierrors.ErrValidation, true
	case errors.Is(err, contactports.ErrNotFound):
		return apierrors.NewNotFoundProblem(msgMessageNotFound), true
	}
	return apierrors.ProblemDetail{}, false
}

func userErrors(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, usersapp.ErrInvalidCredentials):
		return apierrors.ErrUnauthorized.WithDetail(msgInvalidCredentials), true
	case errors.Is(err, userports.ErrTokenExpired):
		return apierrors.ErrUnauthorized.WithDetail("Token expired"), true
	case errors.Is(err, usersapp.ErrUserGone):
		return apierrors.ErrUnauthorized.WithDetail("Invalid token. User not found."), true
	case errors.Is(err, usersapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail("Invalid token"), true
	case errors.Is(err, usersapp.ErrIncorrectPassword):
		return apierrors.ErrBadRequest.WithDetail(msgIncorrectPassword), true
	case errors.Is(err, usersapp.ErrSelfDelete):
		return apierrors.ErrBadRequest.WithDetail("You cannot delete your own account"), true
	case errors.Is(err, userdomain.ErrWeakPassword):
		return apierrors.NewValidationProblem([]apierrors.FieldError{{Field: "password", Message: "Password must be at least 6 characters"}}), true
	case errors.Is(err, userdomain.ErrLongPassword):
		return apierrors.NewValidationProblem([]apierrors.FieldError{{Field: "password", Message: "Password must be at most 72 bytes"}}), true
	case errors.Is(err, userdomain.ErrInvalidEmail):
		return apierrors.NewValidationProblem([]apierrors.FieldError{{Field: "email", Message: "Valid email is required"}}), true
	case errors.Is(err, userdomain.ErrInvalidRole):
		return apierrors.NewValidationProblem([]apierrors.FieldError{{Field: "role", Message: "Role must be admin or staff"}}), true
	case errors.Is(err, usersapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail("Name, email and password are required"), true
	case errors.Is(err, usersapp.ErrConflict):
		return apierrors.ErrConflict.WithDetail(msgUserExists), true
	case errors.Is(err, userports.ErrNotFound):
		return apierrors.NewNotFoundProblem(msgUserNotFound), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondBindError renders a request decoding failure. Validator failures
// carry field errors, anything else is a malformed body.
func respondBindError(c *gin.Context, r *apierrors.ChainedResponder, err error) {
	if fields := fieldErrors(err); len(fields) > 0 {
		r.ValidationFailed(c, fields)
		return
	}
	r.Respond(c, apierrors.ErrBadRequest.WithDetail("Invalid request body"))
}

func respondOK(c *gin.Context, body Envelope) {
	body.Success = true
	c.JSON(http.StatusOK, body)
}

func respondCreated(c *gin.Context, body Envelope) {
	body.Success = true
	c.JSON(http.StatusCreated, body)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
