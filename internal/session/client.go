package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"estatecli/internal/errs"
	"estatecli/internal/model"
)

const refreshPath = "/api/auth/refresh-token"

// Client is the single call surface for backend access. It attaches the
// persisted bearer token to every request and transparently performs at most
// one refresh-and-replay when a request comes back 401. Concurrent 401s
// funnel through one shared refresh call.
type Client struct {
	base    string
	http    *http.Client
	ks      *Keystore
	log     *zap.Logger
	refresh singleflight.Group

	ready atomic.Bool

	mu    sync.Mutex
	hooks []func()
}

// New constructs a client against base. A zero timeout disables the
// per-request deadline.
func New(base string, ks *Keystore, log *zap.Logger, timeout time.Duration) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
		ks:   ks,
		log:  log,
	}
}

// Keystore exposes the token store shared with the auth flow.
func (c *Client) Keystore() *Keystore { return c.ks }

// Ready reports whether at least one request/response cycle has completed,
// successfully or not. Consumers use it to leave their initial loading state.
func (c *Client) Ready() bool { return c.ready.Load() }

// OnSessionExpired registers a hook run when a refresh attempt fails and the
// session is torn down (the forced-logout path).
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, fn)
}

// Do issues method path with an optional JSON body and decodes a 2xx
// response into out (when non-nil). Non-2xx responses surface as *APIError,
// malformed 2xx bodies as *DecodeError, transport failures wrap ErrNetwork.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	defer c.ready.Store(true)

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	// Fresh read on every call; ErrNoSession just means an anonymous request.
	tok, _ := c.ks.Load()

	start := time.Now()
	resp, err := c.send(ctx, method, path, payload, tok.AccessToken)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrNetwork, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && path != refreshPath {
		drain(resp)
		access, rerr := c.refreshTokens(ctx)
		if rerr != nil {
			return rerr
		}
		// Replay exactly once. A second 401 propagates as a failure.
		if resp, err = c.send(ctx, method, path, payload, access); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrNetwork, err)
		}
	}
	defer resp.Body.Close()

	c.log.Debug("http",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: backendMessage(raw)}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, bearer string) (*http.Response, error) {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if rid, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-Id", rid.String())
	}
	return c.http.Do(req)
}

// refreshTokens exchanges the persisted refresh token for a new pair. All
// concurrent callers share one in-flight exchange; only one refresh request
// is ever on the wire at a time. Failure tears the session down.
func (c *Client) refreshTokens(ctx context.Context) (string, error) {
	v, err, _ := c.refresh.Do("refresh", func() (any, error) {
		tok, err := c.ks.Load()
		if err != nil || tok.RefreshToken == "" {
			return "", c.teardown(fmt.Errorf("no refresh token"))
		}

		body, _ := json.Marshal(map[string]string{"refreshToken": tok.RefreshToken})
		resp, err := c.send(ctx, http.MethodPost, refreshPath, body, "")
		if err != nil {
			return "", c.teardown(err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", c.teardown(err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", c.teardown(&APIError{Status: resp.StatusCode, Message: backendMessage(raw)})
		}

		var fresh model.Tokens
		if err := json.Unmarshal(raw, &fresh); err != nil {
			return "", c.teardown(err)
		}
		if err := c.ks.Save(fresh); err != nil {
			return "", err
		}
		c.log.Info("session refreshed")
		return fresh.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// teardown clears the persisted session and notifies hooks. Callers always
// receive ErrSessionExpired regardless of the underlying refresh failure.
func (c *Client) teardown(cause error) error {
	c.log.Warn("refresh failed, clearing session", zap.Error(cause))
	_ = c.ks.Clear()

	c.mu.Lock()
	hooks := append([]func(){}, c.hooks...)
	c.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
	return fmt.Errorf("%w: %v", errs.ErrSessionExpired, cause)
}

// backendMessage pulls the conventional {"message": ...} field; empty when
// the body is not shaped that way.
func backendMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		return envelope.Message
	}
	return ""
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
