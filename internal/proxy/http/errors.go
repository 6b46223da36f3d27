package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/jasiripay/krabridge/internal/proxy/service"
	"github.com/jasiripay/krabridge/pkg/httpx"
	"github.com/jasiripay/krabridge/pkg/kratypes"
	"github.com/jasiripay/krabridge/pkg/slogx"
)

// writeServiceError converts service-layer failures into the documented
// surface: everything past validation is a 500 with an error envelope, with
// upstream failures carrying the structured errorResponse record.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	log := slogx.FromContext(ctx)

	var upstream *kratypes.UpstreamError
	var auth *service.AuthError

	switch {
	case errors.As(err, &upstream):
		log.Warn("upstream call failed",
			"upstream_request_id", upstream.RequestID,
			"upstream_status", upstream.Code,
		)
		upstream.WriteError(w)
	case errors.As(err, &auth):
		log.Error("token fetch rejected", "app", auth.App, "upstream_status", auth.Status)
		httpx.WriteJSON(w, http.StatusInternalServerError, kratypes.ErrorResponse{Error: auth.Error()})
	default:
		log.Error("forward failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, kratypes.ErrorResponse{Error: err.Error()})
	}
}
