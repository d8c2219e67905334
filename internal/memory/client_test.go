package memory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewbyte-backend/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(config.MemoryConfig{
		BaseURL:         server.URL,
		APIKey:          "test-key",
		CacheTTLSeconds: 60,
	})
	require.NotNil(t, client)
	return client
}

func TestNewClient_DisabledWithoutConfig(t *testing.T) {
	assert.Nil(t, NewClient(config.MemoryConfig{APIKey: "key"}), "no base URL disables the client")
	assert.Nil(t, NewClient(config.MemoryConfig{BaseURL: "http://memory.local"}), "no API key disables the client")
}

func TestEnsureUser(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.EnsureUser(context.Background(), "user_sarah", "Sarah")
	require.NoError(t, err)

	assert.Equal(t, "/v1/users", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "user_sarah", gotBody["userId"])
	assert.Equal(t, "Sarah", gotBody["name"])
}

func TestUserFacts(t *testing.T) {
	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/v1/users/user_sarah/facts", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"facts":[{"fact":"Prefers oat milk","rating":0.9},{"fact":"Orders lattes","rating":1.0}]}`))
	})

	facts, err := client.UserFacts(context.Background(), "user_sarah", 3)
	require.NoError(t, err)
	require.Len(t, facts, 2)
	assert.Equal(t, "Prefers oat milk", facts[0].Statement)
	assert.Equal(t, 0.9, facts[0].Rating)

	// A second call within the TTL is served from the cache.
	_, err = client.UserFacts(context.Background(), "user_sarah", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, requests)

	// The cached result is still bounded by the requested limit.
	one, err := client.UserFacts(context.Background(), "user_sarah", 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
	assert.Equal(t, 1, requests)
}

func TestUserFacts_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.UserFacts(context.Background(), "user_sarah", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestAddFacts_InvalidatesCache(t *testing.T) {
	var factRequests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			factRequests++
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"facts":[{"fact":"Prefers oat milk","rating":0.9}]}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	ctx := context.Background()
	_, err := client.UserFacts(ctx, "user_sarah", 3)
	require.NoError(t, err)
	require.Equal(t, 1, factRequests)

	require.NoError(t, client.AddFacts(ctx, "user_sarah", []Fact{{Statement: "Switched to decaf", Rating: 0.8}}))

	_, err = client.UserFacts(ctx, "user_sarah", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, factRequests, "writing facts must drop the cached read")
}

func TestAddFacts_EmptyIsNoop(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty fact list")
	})
	assert.NoError(t, client.AddFacts(context.Background(), "user_sarah", nil))
}

func TestRecordOrder(t *testing.T) {
	var body struct {
		Facts []Fact `json:"facts"`
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/users/user_sarah/facts", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	})

	client.RecordOrder(context.Background(), "user_sarah", []OrderLine{
		{Name: "Latte", Quantity: 2, Customizations: []string{"Oat Milk", "Extra Shot"}},
		{Name: "Croissant", Quantity: 1},
	}, 14.66)

	statements := make([]string, 0, len(body.Facts))
	for _, f := range body.Facts {
		statements = append(statements, f.Statement)
	}
	joined := strings.Join(statements, "\n")

	assert.Contains(t, joined, "Ordered 2x Latte")
	assert.Contains(t, joined, "Prefers customizations: Oat Milk, Extra Shot for Latte")
	assert.Contains(t, joined, "Ordered 1x Croissant")
	assert.Contains(t, joined, "Last order total was $14.66")
	assert.Contains(t, joined, "Often orders in the")
	assert.NotContains(t, joined, "customizations:  for Croissant", "no customization fact for plain items")
}

func TestEndSession(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.EndSession(context.Background(), "user_sarah"))
	assert.Equal(t, "/v1/users/user_sarah/sessions/end", gotPath)
}
