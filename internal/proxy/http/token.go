package http

import (
	"net/http"

	"github.com/jasiripay/krabridge/internal/proxy/service"
	"github.com/jasiripay/krabridge/pkg/httpx"
	"github.com/jasiripay/krabridge/pkg/kratypes"
)

// TokenHandler serves POST /token/.
type TokenHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Fetch or refresh sandbox token
//	@Description	Obtains a fresh OAuth2 client-credentials token for the selected sandbox app.
//	@Description	Always bypasses the cache so the caller gets a newly issued token; the cache entry is overwritten.
//	@Tags			KRA
//	@Accept			json
//	@Produce		json
//	@Param			request	body		kratypes.TokenRequest	false	"App selection (defaults to app1)"
//	@Success		200		{object}	kratypes.TokenResponse	"access_token"
//	@Failure		400		{object}	kratypes.ErrorResponse	"validation detail"
//	@Failure		500		{object}	kratypes.ErrorResponse	"configuration or upstream error"
//	@Router			/token/ [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req kratypes.TokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app := appOrDefault(req.App)

	// Force refresh so the caller always receives a newly issued token.
	token, err := h.TokenService.GetToken(r.Context(), app, true)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, kratypes.TokenResponse{AccessToken: token})
}
