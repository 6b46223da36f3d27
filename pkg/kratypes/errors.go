package kratypes

import (
	"fmt"
	"net/http"

	"github.com/jasiripay/krabridge/pkg/httpx"
)

// UpstreamError is the typed record built when a forwarded call ends on a
// non-success status. RequestID and Timestamp come from the upstream
// x-request-id and date response headers, or "unknown" when absent.
type UpstreamError struct {
	RequestID string `json:"requestId"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream request %s failed with status %d: %s", e.RequestID, e.Code, e.Message)
}

// WriteError writes the record to the client. Upstream failures are collapsed
// to 500 regardless of the upstream status; the original code is preserved
// inside the record.
func (e *UpstreamError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: map[string]*UpstreamError{"errorResponse": e},
	})
}

// APIError is a simple message error with an HTTP status, used for config
// and auth failures surfaced by the bridge itself.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string { return e.Message }

// WriteError writes the message wrapped in the standard error envelope.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{Error: e.Message})
}

var (
	// ErrPinByIDNotConfigured is returned when a deployment never set the
	// PIN-by-ID target URL.
	ErrPinByIDNotConfigured = &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    "KRA_PIN_BY_ID_URL not configured",
	}

	// ErrPinByPinNotConfigured is returned when a deployment never set the
	// PIN-by-PIN target URL.
	ErrPinByPinNotConfigured = &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    "KRA_PIN_BY_PIN_URL not configured",
	}
)
