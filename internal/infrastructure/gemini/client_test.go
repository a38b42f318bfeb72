package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunchradar/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-key", "", "https://api.example.com", 15)

	assert.NotNil(t, client)
	assert.Equal(t, "test-key", client.apiKey)
	assert.Equal(t, defaultModel, client.model)
	assert.NotNil(t, client.rateLimiter)

	unlimited := NewClient("test-key", "gemini-1.5-pro", "https://api.example.com", 0)
	assert.Equal(t, "gemini-1.5-pro", unlimited.model)
	assert.Nil(t, unlimited.rateLimiter)
}

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "extract the menu", req.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"menu_items\":[]}"}]}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "", server.URL, 0)
	reply, err := client.Generate(context.Background(), "extract the menu")

	require.NoError(t, err)
	assert.Equal(t, `{"menu_items":[]}`, reply)
}

func TestGenerate_QuotaFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "", server.URL, 0)
	_, err := client.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrModelFailed)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerate_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "", server.URL, 0)
	_, err := client.Generate(context.Background(), "prompt")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrModelFailed)
}
