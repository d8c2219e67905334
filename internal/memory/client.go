// Package memory integrates the external long-term memory service. The
// integration is optional: a nil *Client degrades every caller to its base
// behavior, and runtime failures are logged and swallowed rather than
// surfaced to the conversation.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"brewbyte-backend/config"
)

// Fact is a short natural-language statement about a user, weighted by a
// confidence rating.
type Fact struct {
	Statement string  `json:"fact"`
	Rating    float64 `json:"rating"`
}

// Client talks to the memory service over its REST API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	// facts are cached briefly so a burst of suggestion calls within one
	// conversational turn hits the service once.
	contextCache *cache.Cache
}

// NewClient builds a memory client, or nil when the service is not
// configured.
func NewClient(cfg config.MemoryConfig) *Client {
	if cfg.BaseURL == "" || cfg.APIKey == "" {
		return nil
	}
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	return &Client{
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		client:       &http.Client{Timeout: 10 * time.Second},
		contextCache: cache.New(ttl, 2*ttl),
	}
}

// EnsureUser registers the user with the memory service so facts can attach
// to them.
func (c *Client) EnsureUser(ctx context.Context, userID, name string) error {
	payload := map[string]any{"userId": userID, "name": name}
	return c.post(ctx, "/v1/users", payload)
}

// AddFacts stores weighted facts on the user's graph and invalidates the
// local cache.
func (c *Client) AddFacts(ctx context.Context, userID string, facts []Fact) error {
	if len(facts) == 0 {
		return nil
	}
	payload := map[string]any{"facts": facts}
	if err := c.post(ctx, "/v1/users/"+userID+"/facts", payload); err != nil {
		return err
	}
	c.contextCache.Delete(userID)
	return nil
}

// UserFacts retrieves the user's stored facts, most relevant first. Results
// are cached for the configured TTL.
func (c *Client) UserFacts(ctx context.Context, userID string, limit int) ([]Fact, error) {
	if cached, found := c.contextCache.Get(userID); found {
		facts := cached.([]Fact)
		if len(facts) > limit {
			facts = facts[:limit]
		}
		return facts, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/users/%s/facts?limit=%d", c.baseURL, userID, limit), nil)
	if err != nil {
		return nil, fmt.Errorf("build facts request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch facts for %s: %w", userID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("memory service returned %d: %s", resp.StatusCode, body)
	}

	var out struct {
		Facts []Fact `json:"facts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode facts response: %w", err)
	}

	c.contextCache.SetDefault(userID, out.Facts)
	return out.Facts, nil
}

// OrderLine is the slice of an order the memory service cares about.
type OrderLine struct {
	Name           string
	Quantity       int
	Customizations []string
}

// RecordOrder converts a completed order into weighted facts (items,
// customization preferences, spend, time-of-day habit) and stores them.
// Failures are logged, never returned: memory is not a hard dependency of
// order submission.
func (c *Client) RecordOrder(ctx context.Context, userID string, lines []OrderLine, total float64) {
	facts := make([]Fact, 0, len(lines)*2+2)
	for _, line := range lines {
		facts = append(facts, Fact{
			Statement: fmt.Sprintf("Ordered %dx %s", line.Quantity, line.Name),
			Rating:    1.0,
		})
		if len(line.Customizations) > 0 {
			facts = append(facts, Fact{
				Statement: fmt.Sprintf("Prefers customizations: %s for %s", strings.Join(line.Customizations, ", "), line.Name),
				Rating:    0.9,
			})
		}
	}
	facts = append(facts, Fact{
		Statement: fmt.Sprintf("Last order total was $%.2f", total),
		Rating:    0.7,
	})
	facts = append(facts, Fact{
		Statement: fmt.Sprintf("Often orders in the %s", timeOfDay(time.Now())),
		Rating:    0.8,
	})

	if err := c.AddFacts(ctx, userID, facts); err != nil {
		log.Printf("Error recording order facts for user %s: %v", userID, err)
	}
}

// EndSession tells the memory service the conversation is over and drops the
// cached context.
func (c *Client) EndSession(ctx context.Context, userID string) error {
	c.contextCache.Delete(userID)
	return c.post(ctx, "/v1/users/"+userID+"/sessions/end", map[string]any{})
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal memory payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build memory request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("memory request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("memory service returned %d for %s: %s", resp.StatusCode, path, respBody)
	}
	return nil
}

func timeOfDay(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}
