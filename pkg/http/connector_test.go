package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoPayload struct {
	Name string `json:"name"`
}

func TestDoRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/things", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name": "pong"}`))
	}))
	defer server.Close()

	connector := NewConnector(server.URL)

	var resp echoPayload
	err := connector.DoRequest(context.Background(), http.MethodPost, "/things", &echoPayload{Name: "ping"}, &resp)

	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Name)
}

func TestDoRequest_NilBodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No request body means no Content-Type either.
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	connector := NewConnector(server.URL)

	err := connector.DoRequest(context.Background(), http.MethodGet, "/things", nil, nil)
	assert.NoError(t, err)
}

func TestDoRequest_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream broke"))
	}))
	defer server.Close()

	connector := NewConnector(server.URL)

	err := connector.DoRequest(context.Background(), http.MethodGet, "/things", nil, nil)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, "upstream broke", httpErr.Message)
	assert.Contains(t, httpErr.Error(), "HTTP 502")
}

func TestDoRequest_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	connector := NewConnector(server.URL)

	err := connector.DoRequest(context.Background(), http.MethodGet, "/things", nil, nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.NotNil(t, netErr.Unwrap())
}

func TestDoRequest_RequestOptions(t *testing.T) {
	var handled bool
	override := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled = true
		assert.Equal(t, "/elsewhere", r.URL.Path)
		assert.Equal(t, "v1", r.Header.Get("X-Custom"))
		w.WriteHeader(http.StatusOK)
	}))
	defer override.Close()

	// Base URL points nowhere routable; WithURL must win over it.
	connector := NewConnector("http://127.0.0.1:1")

	err := connector.DoRequest(context.Background(), http.MethodGet, "/things", nil, nil,
		WithURL(override.URL+"/elsewhere"),
		WithHeader("X-Custom", "v1"),
	)

	require.NoError(t, err)
	assert.True(t, handled)
}

func TestWithAPIKey(t *testing.T) {
	t.Run("key set on every request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		connector := NewConnector(server.URL, WithAPIKey("X-Api-Key", "secret"))
		assert.NoError(t, connector.DoRequest(context.Background(), http.MethodGet, "/", nil, nil))
	})

	t.Run("empty key leaves requests untouched", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, present := r.Header["X-Api-Key"]
			assert.False(t, present)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		connector := NewConnector(server.URL, WithAPIKey("X-Api-Key", ""))
		assert.NoError(t, connector.DoRequest(context.Background(), http.MethodGet, "/", nil, nil))
	})
}

func TestWithTransport_AppliedInOrder(t *testing.T) {
	var order []string
	tag := func(name string) TransportFunc {
		return func(rt http.RoundTripper) http.RoundTripper {
			return roundTripFunc(func(req *http.Request) (*http.Response, error) {
				order = append(order, name)
				return rt.RoundTrip(req)
			})
		}
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	connector := NewConnector(server.URL, WithTransport(tag("inner")), WithTransport(tag("outer")))
	require.NoError(t, connector.DoRequest(context.Background(), http.MethodGet, "/", nil, nil))

	// Last registered transport wraps the others, so it runs first.
	assert.Equal(t, []string{"outer", "inner"}, order)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
