// Package errors defines the gateway-wide error taxonomy. Services return
// coded errors; the transport layer translates codes to HTTP statuses and
// machine-readable error types without inspecting error strings.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure that callers can branch on.
type Code string

const (
	CodeBadRequest      Code = "validation_error"
	CodeUnauthorized    Code = "unauthorized"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not_found"
	CodeQuotaExceeded   Code = "quota_exceeded"
	CodeProviderError   Code = "provider_error"
	CodeProviderTimeout Code = "provider_timeout"
	CodeInternal        Code = "server_error"
)

// GatewayError carries a stable code alongside a human-readable message.
type GatewayError struct {
	Code    Code
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// New creates a coded error with no underlying cause.
func New(code Code, message string) *GatewayError {
	return &GatewayError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *GatewayError {
	return &GatewayError{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from an error chain, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return CodeInternal
}

// MessageOf extracts the coded message from an error chain, if any.
func MessageOf(err error) string {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.Message
	}
	return ""
}

// Is reports whether the error chain carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// ToHTTPStatus maps an error code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeQuotaExceeded:
		return http.StatusTooManyRequests
	case CodeProviderError:
		return http.StatusBadGateway
	case CodeProviderTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
