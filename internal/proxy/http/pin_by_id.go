package http

import (
	"net/http"

	"github.com/jasiripay/krabridge/internal/proxy/domain"
	"github.com/jasiripay/krabridge/internal/proxy/service"
	"github.com/jasiripay/krabridge/pkg/httpx"
	"github.com/jasiripay/krabridge/pkg/kratypes"
)

// PinByIDHandler serves POST /pin-by-id/, proxying to the sandbox endpoint
// that resolves a KRA PIN from a taxpayer type and identifier.
type PinByIDHandler struct {
	ForwardService *service.ForwardService

	// TargetURL is the configured sandbox endpoint. Empty means the
	// deployment never set it; surfaced as a 500, not a crash.
	TargetURL string
}

// ServeHTTP godoc
//
//	@Summary		Lookup KRA PIN by TaxpayerType and TaxpayerID
//	@Description	Forwards the lookup to the KRA sandbox with bearer credentials and returns the sandbox JSON verbatim.
//	@Tags			KRA
//	@Accept			json
//	@Produce		json
//	@Param			request	body		kratypes.PinByIDRequest	true	"Lookup parameters"
//	@Success		200		{object}	map[string]any			"KRA sandbox JSON response (shape may vary)"
//	@Failure		400		{object}	kratypes.ErrorResponse	"validation detail"
//	@Failure		500		{object}	kratypes.ErrorResponse	"configuration or upstream error"
//	@Router			/pin-by-id/ [post].
func (h *PinByIDHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req kratypes.PinByIDRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if h.TargetURL == "" {
		kratypes.ErrPinByIDNotConfigured.WriteError(w)
		return
	}

	payload := domain.PinByIDPayload{
		TaxpayerType: req.TaxpayerType,
		TaxpayerID:   req.TaxpayerID,
	}

	body, err := h.ForwardService.Forward(r.Context(), h.TargetURL, payload, appOrDefault(req.App))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteRawJSON(w, http.StatusOK, body)
}
