// Package httputil centralizes the JSON response envelope so every endpoint
// returns the same shape: {"success": bool, "data": ..., "error": {...}}.
package httputil

import (
	"encoding/json"
	"net/http"

	pkgerrors "addrgate/pkg/errors"
)

// ErrorDetail is the machine-readable error body returned to clients.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Envelope is the uniform API response wrapper.
type Envelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// WriteJSON writes a success envelope with the given payload.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Success: true, Data: data})
}

// WriteError translates a coded error into an error envelope. Internal errors
// hide their message so store/provider details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := pkgerrors.CodeOf(err)
	status := pkgerrors.ToHTTPStatus(code)

	message := pkgerrors.MessageOf(err)
	if code == pkgerrors.CodeInternal || message == "" {
		message = http.StatusText(status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{
		Success: false,
		Error: &ErrorDetail{
			Code:    status,
			Message: message,
			Type:    string(code),
		},
	})
}
