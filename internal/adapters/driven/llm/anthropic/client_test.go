package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flywheel-labs/paperscout/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL})
	require.NoError(t, err)
	return client, srv
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestComplete_ReturnsConcatenatedTextBlocks(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "model-a", req["model"])
		assert.EqualValues(t, 2000, req["max_tokens"])

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "part one "},
				{"type": "text", "text": "part two"},
			},
		})
	})

	text, err := client.Complete(context.Background(), "model-a", "prompt", 2000)
	require.NoError(t, err)
	assert.Equal(t, "part one part two", text)
}

func TestComplete_NotFoundErrorTypeMapsToModelNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"type":    "not_found_error",
				"message": "model: model-x",
			},
		})
	})

	_, err := client.Complete(context.Background(), "model-x", "prompt", 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestComplete_NotFoundStatusWithoutBodyMapsToModelNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("{}"))
	})

	_, err := client.Complete(context.Background(), "model-x", "prompt", 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestComplete_OtherAPIErrorIsNotModelNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"type":    "rate_limit_error",
				"message": "slow down",
			},
		})
	})

	_, err := client.Complete(context.Background(), "model-a", "prompt", 100)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrModelNotFound)
	assert.Contains(t, err.Error(), "slow down")
}

func TestComplete_EmptyContentFails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	})

	_, err := client.Complete(context.Background(), "model-a", "prompt", 100)
	require.Error(t, err)
}
