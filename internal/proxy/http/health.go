package http

import (
	"net/http"
	"time"

	"github.com/jasiripay/krabridge/internal/proxy/store"
	"github.com/jasiripay/krabridge/pkg/httpx"
	"github.com/jasiripay/krabridge/pkg/kratypes"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Always returns 200 while the process is running, with uptime and version.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	kratypes.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, kratypes.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the token store and reports whether upstream targets are configured.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	kratypes.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	kratypes.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.TokenStore, targetsConfigured bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &kratypes.HealthChecks{
			TokenStore: "ok",
			Config:     "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.TokenStore = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Missing targets isn't fatal (the lookup endpoints report it per
		// request) but it is worth surfacing to deploy tooling.
		if !targetsConfigured {
			checks.Config = "warning: lookup target URLs not fully configured"
			overallStatus = "degraded"
		}

		httpx.WriteJSON(w, statusCode, kratypes.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
