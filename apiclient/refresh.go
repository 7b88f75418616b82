package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const refreshPath = "/auth/refresh"

type refreshResult struct {
	AccessToken string `json:"accessToken"`
}

// refreshAccessToken exchanges the cookie-held refresh credential for a new
// access token and persists it (token only; the user record is untouched).
// Concurrent callers share a single in-flight exchange.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	// The exchange outcome is shared by every waiter, so it must not die
	// with the first caller's context.
	ctx = context.WithoutCancel(ctx)

	v, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return c.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// doRefresh performs the actual exchange. No bearer header is sent; the
// refresh cookie in the jar is the only credential. The exchange itself is
// never retried.
func (c *Client) doRefresh(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, nil)
	if err != nil {
		return "", fmt.Errorf("[Client doRefresh] failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("[Client doRefresh] refresh call failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("[Client doRefresh] failed to read refresh response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return "", &APIError{StatusCode: resp.StatusCode}
		}
		return "", fmt.Errorf("[Client doRefresh] malformed refresh envelope: %w", err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		return "", &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	var result refreshResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return "", fmt.Errorf("[Client doRefresh] failed to decode refresh data: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("[Client doRefresh] refresh response missing access token")
	}

	if err := c.creds.SaveToken(result.AccessToken); err != nil {
		return "", fmt.Errorf("[Client doRefresh] failed to persist refreshed token: %w", err)
	}
	return result.AccessToken, nil
}
