package emailverify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client verifies email address deliverability via an external service.
// A nil client (or one with an empty base URL) treats every address as valid.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

// NewClient creates a new email verification client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Verify reports whether the address is deliverable.
func (c *Client) Verify(ctx context.Context, email string) (bool, error) {
	if c == nil || c.http == nil || c.baseURL == "" {
		return true, nil
	}

	u := c.baseURL + "/v1/verify?email=" + url.QueryEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("emailverify request error: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("emailverify request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("emailverify http error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("emailverify decode error: %w", err)
	}
	return out.Valid, nil
}
