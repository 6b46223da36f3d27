package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jasiripay/krabridge/internal/proxy/domain"
	"github.com/jasiripay/krabridge/internal/proxy/store"
	"github.com/jasiripay/krabridge/pkg/slogx"
)

// DefaultTokenTTL bounds how long a fetched token is served from cache. It is
// a client-side approximation, deliberately independent of whatever lifetime
// the sandbox actually grants; a 401 downstream forces a refresh early.
const DefaultTokenTTL = time.Hour

// TokenService resolves an app name to cached or freshly obtained bearer
// credentials using the OAuth2 client-credentials flow.
type TokenService struct {
	Store  store.TokenStore
	Apps   map[string]domain.AppIdentity
	Client *http.Client
	TTL    time.Duration
}

// GetToken returns a bearer token for the named app. Unless forceRefresh is
// set, a live cached entry is returned without a network call. A fetch stores
// the token with expiry now+TTL, replacing any prior entry.
func (s *TokenService) GetToken(ctx context.Context, app string, forceRefresh bool) (string, error) {
	if !forceRefresh {
		if cached, err := s.Store.Get(ctx, app); err == nil {
			return cached.Value, nil
		}
	}

	identity, ok := s.Apps[app]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownApp, app)
	}

	token, err := s.fetch(ctx, identity)
	if err != nil {
		return "", err
	}

	entry := domain.CachedToken{
		App:       app,
		Value:     token,
		ExpiresAt: time.Now().Add(s.ttl()),
	}
	if err := s.Store.Put(ctx, entry); err != nil {
		// A dead cache shouldn't fail the call; the token itself is good.
		slogx.FromContext(ctx).Warn("token cache write failed", "app", app, "err", err)
	}

	return token, nil
}

// fetch performs the client-credentials request. The sandbox contract is a
// GET with grant_type as a query parameter and HTTP basic auth, not the
// RFC 6749 POST form.
func (s *TokenService) fetch(ctx context.Context, identity domain.AppIdentity) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, identity.TokenURL, nil)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}

	q := req.URL.Query()
	q.Set("grant_type", "client_credentials")
	req.URL.RawQuery = q.Encode()
	req.SetBasicAuth(identity.ConsumerKey, identity.ConsumerSecret)

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &AuthError{App: identity.Name, Status: resp.StatusCode, Body: string(body)}
	}

	token := extractToken(body)
	if token == "" {
		slogx.FromContext(ctx).Error("unusable token response",
			slog.String("app", identity.Name),
			slog.Int("body_len", len(body)),
		)
		return "", &AuthError{App: identity.Name, Status: resp.StatusCode, Body: string(body)}
	}

	return token, nil
}

// extractToken pulls access_token out of a JSON response. Some sandbox
// deployments return the bare token string instead of JSON, so a body without
// an access_token field falls back to the trimmed raw text.
func extractToken(body []byte) string {
	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.AccessToken != "" {
		return parsed.AccessToken
	}

	return strings.TrimSpace(string(body))
}

func (s *TokenService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultTokenTTL
}
