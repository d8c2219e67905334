// Package realtime mints ephemeral credentials from the external realtime
// speech API. The API itself (audio transport, speech-to-text) is consumed by
// the browser directly; the backend only authorizes sessions.
package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"brewbyte-backend/config"
)

// Client issues short-lived realtime session credentials.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	voice   string
	client  *http.Client
}

// NewClient creates a realtime API client from config.
func NewClient(cfg config.RealtimeConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		voice:   cfg.Voice,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateSession requests an ephemeral credential and returns the provider's
// payload as-is; the caller merges in the local session id.
func (c *Client) CreateSession(ctx context.Context) (map[string]any, error) {
	body, err := json.Marshal(map[string]string{
		"model": c.model,
		"voice": c.voice,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/realtime/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("realtime session request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("realtime API returned %d: %s", resp.StatusCode, respBody)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode realtime session response: %w", err)
	}
	return payload, nil
}
