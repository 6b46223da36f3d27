package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownApp reports a request for an app name with no configured
	// identity.
	ErrUnknownApp = errors.New("invalid app selection")

	// ErrMaxRetries reports that the retry budget was exhausted by request
	// timeouts.
	ErrMaxRetries = errors.New("maximum retries reached, request timed out")
)

// AuthError reports that the token endpoint rejected the credentials or
// returned a body no token could be extracted from.
type AuthError struct {
	App    string
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token request for %s failed (status %d): %s", e.App, e.Status, e.Body)
}
