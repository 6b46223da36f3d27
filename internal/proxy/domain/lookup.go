package domain

// PinByIDPayload is the body forwarded to the PIN-by-ID sandbox endpoint.
// Field names follow the sandbox contract, not Go convention.
type PinByIDPayload struct {
	TaxpayerType string `json:"TaxpayerType"`
	TaxpayerID   string `json:"TaxpayerID"`
}

// PinByPinPayload is the body forwarded to the PIN-by-PIN sandbox endpoint.
type PinByPinPayload struct {
	KRAPIN string `json:"KRAPIN"`
}
