package domain

import "time"

// CachedToken is a bearer token obtained for one app registration. The expiry
// is a fixed client-side TTL, not the token's real upstream lifetime; a 401
// from the sandbox still forces a refresh before the TTL lapses.
type CachedToken struct {
	App       string
	Value     string
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its TTL at the given instant.
func (t CachedToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
