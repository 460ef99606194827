package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Run("valid endpoint", func(t *testing.T) {
		c, err := NewHTTPClient("https://en.wikipedia.org/w/api.php")
		require.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("with options", func(t *testing.T) {
		c, err := NewHTTPClient("https://en.wikipedia.org/w/api.php",
			WithUserAgent("test-agent"),
			WithTimeout(time.Second),
			WithRetry(0, time.Millisecond),
			WithLogger(nil),
		)
		require.NoError(t, err)
		assert.Equal(t, "test-agent", c.userAgent)
		assert.Equal(t, time.Second, c.httpClient.Timeout)
		assert.Equal(t, 1, c.maxAttempts)
		assert.NotNil(t, c.logger)
	})

	t.Run("default timeout", func(t *testing.T) {
		c, err := NewHTTPClient("https://en.wikipedia.org/w/api.php")
		require.NoError(t, err)
		assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
	})

	t.Run("timeout does not modify injected client", func(t *testing.T) {
		injected := &http.Client{Timeout: 30 * time.Second}
		c, err := NewHTTPClient("https://en.wikipedia.org/w/api.php",
			WithHTTPClient(injected),
			WithTimeout(time.Second),
		)
		require.NoError(t, err)
		assert.Same(t, injected, c.httpClient)
		assert.Equal(t, 30*time.Second, injected.Timeout)
	})

	t.Run("timeout before injected client", func(t *testing.T) {
		c, err := NewHTTPClient("https://en.wikipedia.org/w/api.php",
			WithTimeout(time.Second),
			WithHTTPClient(http.DefaultClient),
		)
		require.NoError(t, err)
		assert.Same(t, http.DefaultClient, c.httpClient)
		assert.Zero(t, http.DefaultClient.Timeout)
	})

	t.Run("empty endpoint", func(t *testing.T) {
		_, err := NewHTTPClient("")
		assert.Equal(t, ErrEndpointRequired, err)
	})

	t.Run("non http scheme", func(t *testing.T) {
		_, err := NewHTTPClient("ftp://example.org/api.php")
		assert.ErrorIs(t, err, ErrInvalidEndpoint)
	})
}

func TestHTTPClient_Get(t *testing.T) {
	var gotQuery, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"batchcomplete":true,"query":{"pages":[{"pageid":1,"ns":0,"title":"Cat"}]}}`)
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL+"/w/api.php", WithUserAgent("readmore-test"))
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), Params{"action": "query", "titles": "Cat"})
	require.NoError(t, err)
	require.NotNil(t, resp.Query)
	require.Len(t, resp.Query.Pages, 1)
	assert.Equal(t, "Cat", resp.Query.Pages[0].Title)
	assert.Equal(t, "action=query&titles=Cat", gotQuery)
	assert.Equal(t, "readmore-test", gotAgent)
}

func TestHTTPClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"query":{"pages":[]}}`)
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL, WithRetry(3, time.Millisecond))
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), Params{"action": "query"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Query)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPClient_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL, WithRetry(2, time.Millisecond))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), Params{"action": "query"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL, WithRetry(3, time.Millisecond))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), Params{"action": "query"})
	assert.ErrorIs(t, err, ErrBadStatus)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL, WithRetry(3, time.Millisecond))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), Params{"action": "query"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestHTTPClient_APIErrorIsNotTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"code":"badvalue","info":"Unrecognized value for parameter \"generator\""}}`)
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL)
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), Params{"generator": "search"})
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Nil(t, resp.Query)
}

func TestHTTPClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	c, err := NewHTTPClient(server.URL, WithRetry(5, time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = c.Get(ctx, Params{"action": "query"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
