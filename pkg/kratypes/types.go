// Package kratypes holds the request and response shapes shared between the
// bridge's HTTP surface and its clients.
package kratypes

// DefaultApp is used when a request omits the app selector.
const DefaultApp = "app1"

// TokenRequest selects which sandbox app registration to fetch a token for.
type TokenRequest struct {
	App string `json:"app,omitempty" validate:"omitempty,oneof=app1 app2" example:"app1"`
}

// TokenResponse is the successful body of POST /token/.
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"7e9c3a1d..."`
}

// PinByIDRequest looks up a KRA PIN from a taxpayer type and identifier.
type PinByIDRequest struct {
	App          string `json:"app,omitempty" validate:"omitempty,oneof=app1 app2" example:"app1"`
	TaxpayerType string `json:"TaxpayerType" validate:"required,max=10" example:"KE"`
	TaxpayerID   string `json:"TaxpayerID" validate:"required,max=64" example:"12345678"`
}

// PinByPinRequest looks up taxpayer details from a KRA PIN.
type PinByPinRequest struct {
	App    string `json:"app,omitempty" validate:"omitempty,oneof=app1 app2" example:"app1"`
	KRAPIN string `json:"KRAPIN" validate:"required,max=64" example:"A000000000Z"`
}

// ErrorResponse is the generic error envelope. Error is either a plain
// message, a field-name to detail map (validation failures), or an
// UpstreamError record.
type ErrorResponse struct {
	Error any `json:"error"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"v0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness detail.
type HealthChecks struct {
	TokenStore string `json:"token_store" example:"ok"`
	Config     string `json:"config" example:"ok"`
}
