// Package models holds the shared address domain types exchanged between the
// pipeline components and the transport layer.
package models

// StandardizedAddress is a provider-confirmed deliverable address. It is only
// ever fully populated; a partial match is reported as no match instead.
type StandardizedAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

// ValidateRequest is the inbound payload for address validation.
type ValidateRequest struct {
	AddressRaw string `json:"address_raw"`
}

// ValidateResponse reports the outcome for one address. Standardized is nil
// when the input was rejected or no deliverable match exists.
type ValidateResponse struct {
	AddressRaw   string               `json:"address_raw"`
	Valid        bool                 `json:"valid"`
	Standardized *StandardizedAddress `json:"standardized"`
	Message      string               `json:"message,omitempty"`
}
