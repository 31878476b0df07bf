package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the JSON shape of every error response.
type Body struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Responder renders problems into the error envelope.
type Responder struct {
	logger *slog.Logger
}

// NewResponder creates a responder. A nil logger disables logging of
// internal failures.
func NewResponder(logger *slog.Logger) *Responder {
	return &Responder{logger: logger}
}

// DefaultResponder does not log.
var DefaultResponder = NewResponder(nil)

// Respond writes the problem and aborts the handler chain.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	status := problem.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, Body{
		Success: false,
		Message: problem.Message(),
		Errors:  problem.Fields,
	})
}

// RespondError converts an error to a ProblemDetail and responds. Unknown
// errors become a 500 whose message is fallback; the cause is only logged.
func (r *Responder) RespondError(c *gin.Context, err error, fallback string) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	if r.logger != nil && err != nil {
		r.logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
	}
	if fallback == "" {
		fallback = ErrInternal.Title
	}
	r.Respond(c, ErrInternal.WithDetail(fallback))
}

// NotFound sends a 404 response.
func (r *Responder) NotFound(c *gin.Context, detail string) {
	r.Respond(c, NewNotFoundProblem(detail))
}

// BadRequest sends a 400 response.
func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

// ValidationFailed sends a 400 response with field errors.
func (r *Responder) ValidationFailed(c *gin.Context, fields []FieldError) {
	r.Respond(c, NewValidationProblem(fields))
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

// ErrorMapper maps domain/application errors to ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder supports custom error mapping.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

// NewChainedResponder creates a responder with custom error mappers.
func NewChainedResponder(logger *slog.Logger, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(logger),
		mappers:   mappers,
	}
}

// AddMapper adds an error mapper to the chain.
func (r *ChainedResponder) AddMapper(mapper ErrorMapper) {
	r.mappers = append(r.mappers, mapper)
}

// RespondError tries each mapper before falling back to default handling.
func (r *ChainedResponder) RespondError(c *gin.Context, err error, fallback string) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Responder.RespondError(c, err, fallback)
}

// HTTPStatusFromError extracts HTTP status from an error if possible.
func HTTPStatusFromError(err error) int {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}
