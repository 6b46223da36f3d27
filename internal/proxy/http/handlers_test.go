package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jasiripay/krabridge/internal/proxy/domain"
	"github.com/jasiripay/krabridge/internal/proxy/service"
	"github.com/jasiripay/krabridge/internal/proxy/store/drivers/memory"
	"github.com/jasiripay/krabridge/pkg/kratypes"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	tokens     *service.TokenService
	forwarder  *service.ForwardService
	store      *memory.Store
	tokenCalls *atomic.Int32
}

// newFixture wires real services against a stub token endpoint issuing
// tok-1, tok-2, ... on successive fetches.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	var tokenCalls atomic.Int32
	tokenEndpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"access_token":"tok-%d"}`, tokenCalls.Add(1))
	}))
	t.Cleanup(tokenEndpoint.Close)

	st := memory.NewStore()
	tokens := &service.TokenService{
		Store: st,
		Apps: map[string]domain.AppIdentity{
			"app1": {Name: "app1", TokenURL: tokenEndpoint.URL, ConsumerKey: "k1", ConsumerSecret: "s1"},
			"app2": {Name: "app2", TokenURL: tokenEndpoint.URL, ConsumerKey: "k2", ConsumerSecret: "s2"},
		},
		Client: http.DefaultClient,
		TTL:    time.Hour,
	}

	return &fixture{
		tokens: tokens,
		forwarder: &service.ForwardService{
			Tokens:     tokens,
			Client:     http.DefaultClient,
			MaxRetries: 5,
			Timeout:    time.Second,
		},
		store:      st,
		tokenCalls: &tokenCalls,
	}
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTokenHandler(t *testing.T) {
	fx := newFixture(t)
	h := &TokenHandler{TokenService: fx.tokens}

	t.Run("returns fresh token with default app", func(t *testing.T) {
		rec := postJSON(t, h, "/token/", `{}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp kratypes.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "tok-1", resp.AccessToken)
	})

	t.Run("empty body is accepted", func(t *testing.T) {
		rec := postJSON(t, h, "/token/", "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("force refreshes even when cached", func(t *testing.T) {
		before := fx.tokenCalls.Load()
		rec := postJSON(t, h, "/token/", `{"app":"app1"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, before+1, fx.tokenCalls.Load())
	})

	t.Run("rejects invalid app selection", func(t *testing.T) {
		rec := postJSON(t, h, "/token/", `{"app":"app9"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "App")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		rec := postJSON(t, h, "/token/", `{"app":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid JSON body")
	})
}

func TestPinByPinHandler(t *testing.T) {
	fx := newFixture(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload domain.PinByPinPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		fmt.Fprintf(w, `{"PIN":%q,"Status":"Active"}`, payload.KRAPIN)
	}))
	defer upstream.Close()

	h := &PinByPinHandler{ForwardService: fx.forwarder, TargetURL: upstream.URL}

	t.Run("proxies upstream response verbatim", func(t *testing.T) {
		rec := postJSON(t, h, "/pin-by-pin/", `{"KRAPIN":"A000000000Z"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"PIN":"A000000000Z","Status":"Active"}`, rec.Body.String())
	})

	t.Run("requires KRAPIN", func(t *testing.T) {
		rec := postJSON(t, h, "/pin-by-pin/", `{}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Error map[string]string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "this field is required", resp.Error["KRAPIN"])
	})

	t.Run("enforces KRAPIN length", func(t *testing.T) {
		long := strings.Repeat("A", 65)
		rec := postJSON(t, h, "/pin-by-pin/", fmt.Sprintf(`{"KRAPIN":%q}`, long))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "at most 64 characters")
	})

	t.Run("missing target URL is a config error", func(t *testing.T) {
		unconfigured := &PinByPinHandler{ForwardService: fx.forwarder}
		rec := postJSON(t, unconfigured, "/pin-by-pin/", `{"KRAPIN":"A000000000Z"}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "KRA_PIN_BY_PIN_URL not configured")
	})
}

func TestPinByIDHandler(t *testing.T) {
	fx := newFixture(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload domain.PinByIDPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "KE", payload.TaxpayerType)
		require.Equal(t, "12345678", payload.TaxpayerID)
		_, _ = w.Write([]byte(`{"PIN":"A000000000Z"}`))
	}))
	defer upstream.Close()

	h := &PinByIDHandler{ForwardService: fx.forwarder, TargetURL: upstream.URL}

	t.Run("forwards both fields", func(t *testing.T) {
		rec := postJSON(t, h, "/pin-by-id/", `{"TaxpayerType":"KE","TaxpayerID":"12345678"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"PIN":"A000000000Z"}`, rec.Body.String())
	})

	t.Run("validates both fields", func(t *testing.T) {
		rec := postJSON(t, h, "/pin-by-id/", `{}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Error map[string]string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Error, 2)
	})

	t.Run("enforces TaxpayerType length", func(t *testing.T) {
		rec := postJSON(t, h, "/pin-by-id/", `{"TaxpayerType":"ABCDEFGHIJK","TaxpayerID":"1"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "at most 10 characters")
	})
}

func TestUpstreamFailureSurfacesErrorRecord(t *testing.T) {
	fx := newFixture(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-request-id", "req-err")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("forbidden"))
	}))
	defer upstream.Close()

	h := &PinByPinHandler{ForwardService: fx.forwarder, TargetURL: upstream.URL}

	rec := postJSON(t, h, "/pin-by-pin/", `{"KRAPIN":"A000000000Z"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp struct {
		Error struct {
			ErrorResponse kratypes.UpstreamError `json:"errorResponse"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, http.StatusForbidden, resp.Error.ErrorResponse.Code)
	require.Equal(t, "req-err", resp.Error.ErrorResponse.RequestID)
	require.Equal(t, "forbidden", resp.Error.ErrorResponse.Message)
}

func TestUnknownAppIsServerError(t *testing.T) {
	fx := newFixture(t)
	fx.tokens.Apps = map[string]domain.AppIdentity{}

	h := &TokenHandler{TokenService: fx.tokens}
	rec := postJSON(t, h, "/token/", `{"app":"app1"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid app selection")
}

func TestHealthHandlers(t *testing.T) {
	st := memory.NewStore()
	start := time.Now()

	t.Run("livez", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/livez", nil)
		rec := httptest.NewRecorder()
		LivezHandler(start, "test")(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp kratypes.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "ok", resp.Status)
		require.Equal(t, "test", resp.Version)
	})

	t.Run("readyz ok", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()
		ReadyzHandler(start, "test", st, true)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp kratypes.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "ok", resp.Status)
		require.Equal(t, "ok", resp.Checks.TokenStore)
	})

	t.Run("readyz reports missing targets", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()
		ReadyzHandler(start, "test", st, false)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp kratypes.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "degraded", resp.Status)
		require.Contains(t, resp.Checks.Config, "not fully configured")
	})
}

func TestRouterRouting(t *testing.T) {
	fx := newFixture(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer upstream.Close()

	router := NewRouter("test", fx.store, testLogger())
	router.TokenService = fx.tokens
	router.ForwardService = fx.forwarder
	router.PinByIDURL = upstream.URL
	router.PinByPinURL = upstream.URL
	router.ApplyRoutes()

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("registered routes respond", func(t *testing.T) {
		require.Equal(t, http.StatusOK, do(http.MethodPost, "/pin-by-pin/", `{"KRAPIN":"A000000000Z"}`).Code)
		require.Equal(t, http.StatusOK, do(http.MethodPost, "/pin-by-id/", `{"TaxpayerType":"KE","TaxpayerID":"1"}`).Code)
		require.Equal(t, http.StatusOK, do(http.MethodGet, "/livez", "").Code)
		require.Equal(t, http.StatusOK, do(http.MethodGet, "/readyz", "").Code)
	})

	t.Run("GET on proxy endpoints is rejected", func(t *testing.T) {
		require.Equal(t, http.StatusMethodNotAllowed, do(http.MethodGet, "/pin-by-pin/", "").Code)
	})

	t.Run("responses carry a request id", func(t *testing.T) {
		rec := do(http.MethodGet, "/livez", "")
		require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
