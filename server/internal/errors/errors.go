// Package errors defines the error taxonomy shared by the service and
// handler layers. Every error that crosses the handler boundary is mapped
// to an HTTP status through its code; the raw cause is logged server-side
// and never exposed to the caller.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for boundary mapping.
type Code string

const (
	// CodeValidation indicates invalid input from the caller.
	CodeValidation Code = "VALIDATION"
	// CodeUnauthorized indicates missing or invalid credentials.
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeForbidden indicates an authenticated caller accessing a foreign resource.
	CodeForbidden Code = "FORBIDDEN"
	// CodeNotFound indicates the resource is absent or not owned by the caller.
	CodeNotFound Code = "NOT_FOUND"
	// CodeConfiguration indicates a missing or invalid server configuration.
	CodeConfiguration Code = "CONFIGURATION"
	// CodeUpstream indicates a non-success or malformed upstream response.
	CodeUpstream Code = "UPSTREAM"
	// CodeEmptyResponse indicates a success upstream response with no usable content.
	CodeEmptyResponse Code = "EMPTY_RESPONSE"
	// CodeInternal indicates an unexpected server error.
	CodeInternal Code = "INTERNAL"
)

// Error is a classified error carrying an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Forbidden creates a forbidden error.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// NotFound creates a not-found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// Configuration creates a configuration error.
func Configuration(msg string) *Error {
	return &Error{Code: CodeConfiguration, Message: msg}
}

// Upstream creates an upstream error with the underlying cause.
func Upstream(msg string, cause error) *Error {
	return &Error{Code: CodeUpstream, Message: msg, Cause: cause}
}

// EmptyResponse creates an empty-response error.
func EmptyResponse(msg string) *Error {
	return &Error{Code: CodeEmptyResponse, Message: msg}
}

// Internal wraps an unexpected error.
func Internal(cause error) *Error {
	return &Error{Code: CodeInternal, Message: "internal server error", Cause: cause}
}

// CodeOf extracts the code from err, or CodeInternal for unclassified errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the client-facing message for err. Unclassified errors
// collapse to a generic message so no internal detail leaks out.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus maps an error to its HTTP status code.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConfiguration, CodeUpstream, CodeEmptyResponse, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
