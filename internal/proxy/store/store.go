package store

import (
	"context"
	"errors"

	"github.com/jasiripay/krabridge/internal/proxy/domain"
)

// ErrNotFound reports that no live token exists for the requested app.
var ErrNotFound = errors.New("store: not found")

// TokenStore is the token cache abstraction. Concrete drivers (memory,
// sqlite) implement this. At most one entry exists per app name; Put
// atomically replaces any prior entry so a forced refresh by one request is
// immediately visible to concurrent requests for the same app
// (last-writer-wins).
type TokenStore interface {
	// Get returns the cached token for app. Entries past their expiry are
	// treated as absent; both cases return ErrNotFound.
	Get(ctx context.Context, app string) (domain.CachedToken, error)

	// Put stores the token, replacing any existing entry for the same app.
	Put(ctx context.Context, token domain.CachedToken) error

	// Delete removes the entry for app, if any.
	Delete(ctx context.Context, app string) error

	// Ping verifies the store is usable (readiness probe).
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
