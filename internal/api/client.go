// ABOUTME: HTTP client for the AskBob tracker API
// ABOUTME: Single request surface that attaches the current bearer credential

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// basePath is the versioned prefix every tracker endpoint lives under.
const basePath = "/api/v1"

// Client is the single access point to the tracker API. All calls attach
// the current credential as a bearer Authorization header when one is set.
// The client never retries; callers decide.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the tracker at baseURL (scheme + host, no path).
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken installs the credential used by all subsequent requests.
// In-flight requests keep the credential they were issued with.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the credential; subsequent requests go out unauthenticated.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the currently attached credential, empty when none is set.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Request performs one API call. path is relative to the versioned base
// path ("/projects", "/auth/login"). body, when non-nil, is JSON-encoded.
// Non-2xx responses become *Error; transport failures become *NetworkError.
// The returned bytes are the raw response body (empty for 204).
func (c *Client) Request(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	url := c.baseURL + basePath + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("Request failed", "method", method, "path", path, "error", err)
		return nil, &NetworkError{URL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var errBody struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Detail = errBody.Detail
		}
		slog.Debug("Request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return buf.Bytes(), nil
}

// GetJSON performs a GET and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	data, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid response from tracker: %w", err)
	}
	return nil
}

// PostJSON performs a POST with body and decodes the response into out
// when out is non-nil.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.writeJSON(ctx, http.MethodPost, path, body, out)
}

// PutJSON performs a PUT with body and decodes the response into out
// when out is non-nil.
func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	return c.writeJSON(ctx, http.MethodPut, path, body, out)
}

// Delete performs a DELETE and discards any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Request(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) writeJSON(ctx context.Context, method, path string, body, out any) error {
	data, err := c.Request(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid response from tracker: %w", err)
	}
	return nil
}
