// Package apiclient is the single entry point for all Bandung Journal
// backend calls. It attaches the stored bearer token to every request,
// carries the server-set refresh cookie transparently, and recovers from
// access-token expiry with exactly one refresh-and-retry cycle per request.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/bandungjournal/bandung-client/credstore"
	errs "github.com/bandungjournal/bandung-client/internal/errors"
)

// Responses larger than this are truncated; no endpoint returns anywhere
// near it.
const maxResponseBytes = 1 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      credstore.Store
	userAgent  string

	// onAuthExpired fires after a failed refresh, once the store has been
	// cleared. The CLI uses it to tell the reader to sign in again.
	onAuthExpired func()

	// refreshGroup coalesces concurrent refresh attempts behind a single
	// in-flight exchange; every waiter retries with the token it yields.
	refreshGroup singleflight.Group
}

// ClientOption modifies the Client instance.
type ClientOption func(*Client)

// WithTimeout sets an overall per-request timeout. The default of zero
// leaves timeouts to the transport.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithAuthExpiredFunc registers the callback fired when a refresh fails and
// the local session has been wiped.
func WithAuthExpiredFunc(fn func()) ClientOption {
	return func(c *Client) {
		c.onAuthExpired = fn
	}
}

// WithTransport replaces the underlying round tripper (primarily for testing).
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// NewClient creates a client rooted at baseURL. The cookie jar holds the
// server-set refresh cookie; client code never reads or writes it.
func NewClient(baseURL string, creds credstore.Store, options ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("[NewClient] base URL is required")
	}
	if creds == nil {
		return nil, fmt.Errorf("[NewClient] credential store is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("[NewClient] failed to create cookie jar: %w", err)
	}

	c := &Client{
		baseURL:    trimTrailingSlash(baseURL),
		httpClient: &http.Client{Jar: jar},
		creds:      creds,
		userAgent:  "bandung-client/1.0",
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Get issues a GET request and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// do sends one request through the authenticated pipeline. On a 401 for a
// request that has not yet been retried it refreshes the access token and
// replays the request exactly once; a 401 on the replay, and every other
// failure, propagates untouched.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[Client do] failed to encode request body: %w", err)
		}
	}

	requestID := uuid.New().String()

	resp, err := c.send(ctx, method, path, query, payload, requestID, c.creds.Token())
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		origErr := c.drainError(resp, requestID)

		newToken, refreshErr := c.refreshAccessToken(ctx)
		if refreshErr != nil {
			// Terminal: wipe the local session and fail closed.
			c.creds.Clear()
			if c.onAuthExpired != nil {
				c.onAuthExpired()
			}
			log.Warn().Err(refreshErr).Str("request_id", requestID).Msg("apiclient: token refresh failed, session cleared")
			return fmt.Errorf("%w: %w", errs.ErrSessionExpired, origErr)
		}

		resp, err = c.send(ctx, method, path, query, payload, requestID, newToken)
		if err != nil {
			return err
		}
		// A second 401 falls through and surfaces as a plain APIError.
	}

	return c.decode(resp, requestID, out)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, requestID, token string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("[Client send] failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[Client send] %s %s: %w", method, path, err)
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("request_id", requestID).
		Msg("apiclient: request")

	return resp, nil
}

// decode reads an envelope response. A non-2xx status or an unsuccessful
// envelope becomes an *APIError; otherwise the envelope data is decoded
// into out (when out is non-nil).
func (c *Client) decode(resp *http.Response, requestID string, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("[Client decode] failed to read response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 400 {
				return &APIError{StatusCode: resp.StatusCode, RequestID: requestID}
			}
			return fmt.Errorf("[Client decode] malformed response envelope: %w", err)
		}
	}

	if resp.StatusCode >= 400 || (len(raw) > 0 && !env.Success) {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message, RequestID: requestID}
	}

	if out == nil || len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("[Client decode] failed to decode response data: %w", err)
	}
	return nil
}

// drainError consumes a failed response's body and converts it to an APIError.
func (c *Client) drainError(resp *http.Response, requestID string) error {
	defer resp.Body.Close()

	apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apiErr
	}
	var env envelope
	if json.Unmarshal(raw, &env) == nil {
		apiErr.Message = env.Message
	}
	return apiErr
}

func asAPIError(err error, target **APIError) bool {
	return errors.As(err, target)
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
