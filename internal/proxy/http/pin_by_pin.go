package http

import (
	"net/http"

	"github.com/jasiripay/krabridge/internal/proxy/domain"
	"github.com/jasiripay/krabridge/internal/proxy/service"
	"github.com/jasiripay/krabridge/pkg/httpx"
	"github.com/jasiripay/krabridge/pkg/kratypes"
)

// PinByPinHandler serves POST /pin-by-pin/, proxying to the sandbox endpoint
// that resolves taxpayer details from a KRA PIN.
type PinByPinHandler struct {
	ForwardService *service.ForwardService
	TargetURL      string
}

// ServeHTTP godoc
//
//	@Summary		Lookup KRA details by KRAPIN
//	@Description	Forwards the lookup to the KRA sandbox with bearer credentials and returns the sandbox JSON verbatim.
//	@Tags			KRA
//	@Accept			json
//	@Produce		json
//	@Param			request	body		kratypes.PinByPinRequest	true	"Lookup parameters"
//	@Success		200		{object}	map[string]any				"KRA sandbox JSON response (shape may vary)"
//	@Failure		400		{object}	kratypes.ErrorResponse		"validation detail"
//	@Failure		500		{object}	kratypes.ErrorResponse		"configuration or upstream error"
//	@Router			/pin-by-pin/ [post].
func (h *PinByPinHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req kratypes.PinByPinRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if h.TargetURL == "" {
		kratypes.ErrPinByPinNotConfigured.WriteError(w)
		return
	}

	payload := domain.PinByPinPayload{KRAPIN: req.KRAPIN}

	body, err := h.ForwardService.Forward(r.Context(), h.TargetURL, payload, appOrDefault(req.App))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteRawJSON(w, http.StatusOK, body)
}
