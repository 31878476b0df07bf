// Package errors provides the API error taxonomy and its JSON rendering.
package errors

import (
	"fmt"
	"net/http"
)

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ProblemDetail classifies a failed request. Type and Title identify the
// kind of failure, Detail is the client-facing message for this occurrence.
type ProblemDetail struct {
	Type   string
	Title  string
	Status int
	Detail string
	// Fields carries per-field validation failures.
	Fields []FieldError
}

// Error implements the error interface.
func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// Message is the text surfaced to clients.
func (p ProblemDetail) Message() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithFields returns a copy carrying field-level errors.
func (p ProblemDetail) WithFields(fields []FieldError) ProblemDetail {
	p.Fields = append([]FieldError(nil), fields...)
	return p
}

// Problem types.
const (
	TypeValidation      = "/problems/validation-error"
	TypeNotFound        = "/problems/not-found"
	TypeConflict        = "/problems/conflict"
	TypeInternal        = "/problems/internal-error"
	TypeUnauthorized    = "/problems/unauthorized"
	TypeForbidden       = "/problems/forbidden"
	TypeBadRequest      = "/problems/bad-request"
	TypeTooManyRequests = "/problems/too-many-requests"
)

var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource not found",
		Status: http.StatusNotFound,
	}

	// ErrValidation indicates the request failed validation.
	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation failed",
		Status: http.StatusBadRequest,
	}

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad request",
		Status: http.StatusBadRequest,
	}

	// ErrConflict indicates a conflict with the current state.
	ErrConflict = ProblemDetail{
		Type:   TypeConflict,
		Title:  "Conflict",
		Status: http.StatusConflict,
	}

	// ErrInternal indicates an unexpected server error.
	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal server error",
		Status: http.StatusInternalServerError,
	}

	// ErrUnauthorized indicates missing or invalid authentication.
	ErrUnauthorized = ProblemDetail{
		Type:   TypeUnauthorized,
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
	}

	// ErrForbidden indicates the caller's role does not allow the action.
	ErrForbidden = ProblemDetail{
		Type:   TypeForbidden,
		Title:  "Forbidden",
		Status: http.StatusForbidden,
	}

	// ErrTooManyRequests indicates the caller exceeded its request budget.
	ErrTooManyRequests = ProblemDetail{
		Type:   TypeTooManyRequests,
		Title:  "Too many requests, please try again later.",
		Status: http.StatusTooManyRequests,
	}
)

// NewValidationProblem creates a validation error with field-level details.
func NewValidationProblem(fields []FieldError) ProblemDetail {
	return ErrValidation.WithFields(fields)
}

// NewNotFoundProblem creates a not found error with a client message.
func NewNotFoundProblem(detail string) ProblemDetail {
	return ErrNotFound.WithDetail(detail)
}
