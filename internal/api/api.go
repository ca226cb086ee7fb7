// Package api provides typed bindings over the session client, one family
// per endpoint group. Responses are decoded into model types at this
// boundary; statuses map onto errs sentinels via session.APIError.
package api

import (
	"context"

	"estatecli/internal/session"
)

// doer is the slice of session.Client the bindings need.
type doer interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Client implements every endpoint family over one session client.
type Client struct {
	c doer
}

// New wraps a session client.
func New(s *session.Client) *Client { return &Client{c: s} }
