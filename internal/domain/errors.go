package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that carry their client-visible shape.
// Every error crossing the handler boundary is either one of these or is
// collapsed into a generic ApplicationError by the responder.
type HTTPError interface {
	error
	StatusCode() int
	Kind() string
}

// Sentinel errors for use with errors.Is()
var (
	ErrNotFound     = errors.New("resource not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrApplication  = errors.New("application error")
)

// FieldError describes a single invalid or missing property in a request
// body. It is embedded in BadRequestError responses.
type FieldError struct {
	Message  string `json:"message"`
	Property string `json:"property"`
}

type (
	// UnauthorizedError indicates a missing, invalid or expired credential,
	// or a caller acting outside their resource scope on a mutation.
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates a valid credential whose permission set does
	// not cover the route.
	ForbiddenError struct {
		Message string
	}

	// BadRequestError indicates structurally invalid input, with per-field
	// problems where known.
	BadRequestError struct {
		Message string
		Errors  []FieldError
	}

	// ResourceNotFoundError covers nonexistent ids, malformed ids, and
	// resources whose existence is deliberately hidden from the caller.
	ResourceNotFoundError struct {
		Message string
	}

	// ApplicationError indicates an internal invariant violation, such as
	// missing seed data.
	ApplicationError struct {
		Message string
	}

	// EndpointNotFoundError is returned for requests that match no route.
	EndpointNotFoundError struct{}
)

// Constructors supply the fixed default messages the clients rely on.

func NewUnauthorizedError(message string) *UnauthorizedError {
	if message == "" {
		message = "Unauthorized"
	}
	return &UnauthorizedError{Message: message}
}

func NewForbiddenError(message string) *ForbiddenError {
	if message == "" {
		message = "Forbidden"
	}
	return &ForbiddenError{Message: message}
}

func NewBadRequestError(message string, fieldErrors ...FieldError) *BadRequestError {
	if message == "" {
		message = "Bad request"
	}
	return &BadRequestError{Message: message, Errors: fieldErrors}
}

func NewResourceNotFoundError(message string) *ResourceNotFoundError {
	if message == "" {
		message = "Resource not found"
	}
	return &ResourceNotFoundError{Message: message}
}

func NewApplicationError(message string) *ApplicationError {
	if message == "" {
		message = "Something went wrong. Please try again"
	}
	return &ApplicationError{Message: message}
}

func (e *UnauthorizedError) Error() string     { return e.Message }
func (e *ForbiddenError) Error() string        { return e.Message }
func (e *BadRequestError) Error() string       { return e.Message }
func (e *ResourceNotFoundError) Error() string { return e.Message }
func (e *ApplicationError) Error() string      { return e.Message }
func (e *EndpointNotFoundError) Error() string { return "Endpoint not found" }

func (e *UnauthorizedError) StatusCode() int     { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int        { return http.StatusForbidden }
func (e *BadRequestError) StatusCode() int       { return http.StatusBadRequest }
func (e *ResourceNotFoundError) StatusCode() int { return http.StatusNotFound }
func (e *ApplicationError) StatusCode() int      { return http.StatusInternalServerError }
func (e *EndpointNotFoundError) StatusCode() int { return http.StatusNotFound }

func (e *UnauthorizedError) Kind() string     { return "UnauthorizedError" }
func (e *ForbiddenError) Kind() string        { return "ForbiddenError" }
func (e *BadRequestError) Kind() string       { return "BadRequestError" }
func (e *ResourceNotFoundError) Kind() string { return "ResourceNotFoundError" }
func (e *ApplicationError) Kind() string      { return "ApplicationError" }
func (e *EndpointNotFoundError) Kind() string { return "EndpointNotFoundError" }

// Is hooks let errors.Is() match the typed errors against the sentinels.

func (e *UnauthorizedError) Is(target error) bool     { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool        { return target == ErrForbidden }
func (e *BadRequestError) Is(target error) bool       { return target == ErrBadRequest }
func (e *ResourceNotFoundError) Is(target error) bool { return target == ErrNotFound }
func (e *ApplicationError) Is(target error) bool      { return target == ErrApplication }
func (e *EndpointNotFoundError) Is(target error) bool { return target == ErrNotFound }
