package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/jasiripay/krabridge/pkg/kratypes"
	"github.com/jasiripay/krabridge/pkg/slogx"
)

const (
	// DefaultMaxRetries bounds how many timed-out or 504 attempts a single
	// forwarded call may burn before giving up.
	DefaultMaxRetries = 5

	// DefaultAttemptTimeout is the per-attempt deadline for upstream calls.
	DefaultAttemptTimeout = 60 * time.Second
)

// ForwardService sends business payloads to sandbox endpoints with the
// TokenService's bearer credentials. Two distinct retry triggers:
//
//   - 401 means the cached credential went stale server-side; refresh the
//     token and re-issue once, without consuming the retry budget. A second
//     401 after the refreshed token ends the loop (the sandbox is rejecting
//     the app itself, looping won't fix it).
//   - 504 and request timeouts mean the sandbox gateway is flaky; re-issue
//     blindly up to MaxRetries.
//
// Any other status, success or failure, ends the loop immediately.
type ForwardService struct {
	Tokens     *TokenService
	Client     *http.Client
	MaxRetries int
	Timeout    time.Duration
}

type attempt struct {
	status    int
	body      []byte
	requestID string
	date      string
}

// Forward POSTs payload to url as JSON on behalf of app and returns the
// upstream body verbatim on success.
func (s *ForwardService) Forward(ctx context.Context, url string, payload any, app string) (json.RawMessage, error) {
	log := slogx.FromContext(ctx)

	token, err := s.Tokens.GetToken(ctx, app, false)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	var (
		last      *attempt
		retries   int
		refreshed bool
	)

	for {
		last, err = s.post(ctx, url, token, body)
		if err != nil {
			if isTimeout(err) {
				retries++
				log.Warn("upstream request timed out", "url", url, "retry", retries, "max_retries", s.maxRetries())
				if retries >= s.maxRetries() {
					return nil, ErrMaxRetries
				}
				continue
			}
			return nil, fmt.Errorf("request failed: %w", err)
		}

		if last.status == http.StatusUnauthorized && !refreshed {
			log.Info("upstream returned 401, refreshing token", "app", app)
			refreshed = true
			token, err = s.Tokens.GetToken(ctx, app, true)
			if err != nil {
				return nil, err
			}
			continue
		}

		if last.status == http.StatusGatewayTimeout {
			retries++
			log.Warn("upstream gateway timeout", "url", url, "retry", retries, "max_retries", s.maxRetries())
			if retries < s.maxRetries() {
				continue
			}
		}

		break
	}

	if last.status < 200 || last.status >= 300 {
		return nil, upstreamError(last)
	}

	if !json.Valid(last.body) {
		return nil, fmt.Errorf("upstream returned non-JSON body (status %d)", last.status)
	}

	return json.RawMessage(last.body), nil
}

// post issues a single attempt under its own deadline.
func (s *ForwardService) post(ctx context.Context, url, token string, body []byte) (*attempt, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &attempt{
		status:    resp.StatusCode,
		body:      respBody,
		requestID: resp.Header.Get("x-request-id"),
		date:      resp.Header.Get("date"),
	}, nil
}

func upstreamError(a *attempt) *kratypes.UpstreamError {
	e := &kratypes.UpstreamError{
		RequestID: a.requestID,
		Code:      a.status,
		Message:   string(a.body),
		Timestamp: a.date,
	}
	if e.RequestID == "" {
		e.RequestID = "unknown"
	}
	if e.Timestamp == "" {
		e.Timestamp = "unknown"
	}
	return e
}

// isTimeout reports whether the transport error was a deadline, as opposed to
// a connection-level failure that retrying won't help.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func (s *ForwardService) maxRetries() int {
	if s.MaxRetries > 0 {
		return s.MaxRetries
	}
	return DefaultMaxRetries
}

func (s *ForwardService) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultAttemptTimeout
}
