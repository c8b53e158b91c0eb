package scamdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client queries an external scam database service. A nil client (or one with
// an empty base URL) reports no match, so the check is skippable in dev.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// CheckQuery carries the report fields submitted for a lookup.
type CheckQuery struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Website      string `json:"website,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
}

type checkResponse struct {
	Matched bool `json:"matched"`
}

// NewClient creates a new scam database client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Check reports whether the scam database already knows this scammer profile.
func (c *Client) Check(ctx context.Context, q CheckQuery) (bool, error) {
	if c == nil || c.http == nil || c.baseURL == "" {
		return false, nil
	}

	payload, err := json.Marshal(q)
	if err != nil {
		return false, fmt.Errorf("scamdb check request error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/check", bytes.NewBuffer(payload))
	if err != nil {
		return false, fmt.Errorf("scamdb check request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("scamdb check request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("scamdb check http error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("scamdb check decode error: %w", err)
	}
	return out.Matched, nil
}
