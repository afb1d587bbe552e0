package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptcraft/promptcraft-backend/internal/config"
	"github.com/promptcraft/promptcraft-backend/internal/entity"
	pkghttp "github.com/promptcraft/promptcraft-backend/pkg/http"
)

func testConnector(baseURL string) *Connector {
	return NewConnector(config.GeminiConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           time.Second,
			KeepAlive:             30 * time.Second,
			IdleConnTimeout:       30 * time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
		},
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "gemini-1.5-flash",
	})
}

func completionResponse(texts ...string) string {
	parts := make([]map[string]string, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, map[string]string{"text": text})
	}
	data, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"role": "model", "parts": parts}},
		},
	})
	return string(data)
}

func TestComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}

		system := req["systemInstruction"].(map[string]any)
		systemParts := system["parts"].([]any)
		assert.Equal(t, "You are a helpful assistant.", systemParts[0].(map[string]any)["text"])

		contents := req["contents"].([]any)
		if !assert.Len(t, contents, 1) {
			return
		}
		first := contents[0].(map[string]any)
		assert.Equal(t, "user", first["role"])
		assert.Equal(t, "Idea: a habit tracker", first["parts"].([]any)[0].(map[string]any)["text"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionResponse("Build a habit tracker.")))
	}))
	defer server.Close()

	text, err := testConnector(server.URL).Complete(context.Background(), "You are a helpful assistant.", "Idea: a habit tracker")

	require.NoError(t, err)
	assert.Equal(t, "Build a habit tracker.", text)
}

func TestComplete_JoinsCandidateParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionResponse("Build a habit", " tracker for", " professionals.")))
	}))
	defer server.Close()

	text, err := testConnector(server.URL).Complete(context.Background(), "sys", "content")

	require.NoError(t, err)
	assert.Equal(t, "Build a habit tracker for professionals.", text)
}

func TestComplete_EmptyCandidates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no candidates", `{"candidates": []}`},
		{"candidates missing", `{}`},
		{"candidate with no parts", `{"candidates": [{"content": {"parts": []}}]}`},
		{"candidate with blank text", completionResponse("   \n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			text, err := testConnector(server.URL).Complete(context.Background(), "sys", "content")

			assert.Empty(t, text)
			assert.ErrorIs(t, err, entity.ErrEmptyCompletion)
		})
	}
}

func TestComplete_UpstreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer server.Close()

	text, err := testConnector(server.URL).Complete(context.Background(), "sys", "content")

	assert.Empty(t, text)
	var httpErr *pkghttp.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, "quota exceeded")
}

func TestComplete_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections from here on

	text, err := testConnector(server.URL).Complete(context.Background(), "sys", "content")

	assert.Empty(t, text)
	var netErr *pkghttp.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestComplete_MalformedResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	text, err := testConnector(server.URL).Complete(context.Background(), "sys", "content")

	assert.Empty(t, text)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrEmptyCompletion)
}

func TestComplete_ContextCancelled(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The server only watches for client disconnect once the request
		// body is consumed, so drain it before waiting on the context.
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := testConnector(server.URL).Complete(ctx, "sys", "content")

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled) || errors.As(err, new(*pkghttp.NetworkError)))
}
