package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client submits a report to a partner verification service. The partner
// check runs out-of-band from the main screening pipeline, so a slightly
// longer timeout is acceptable here.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// VerifyPayload carries the report fields the partner needs.
type VerifyPayload struct {
	ReportID     string `json:"report_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ScamType     string `json:"scam_type"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Website      string `json:"website,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
}

type verifyResponse struct {
	Verified bool `json:"verified"`
}

// NewClient creates a new partner verification client.
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

// Verify reports whether the partner service confirms the report.
func (c *Client) Verify(ctx context.Context, p VerifyPayload) (bool, error) {
	if c == nil || c.http == nil || c.baseURL == "" {
		return false, fmt.Errorf("partner verify config error: base_url is empty")
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return false, fmt.Errorf("partner verify request error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/reports/verify", bytes.NewBuffer(payload))
	if err != nil {
		return false, fmt.Errorf("partner verify request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("partner verify request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("partner verify http error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("partner verify decode error: %w", err)
	}
	return out.Verified, nil
}
