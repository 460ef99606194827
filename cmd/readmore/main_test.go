package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/poiesic/readmore/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// writeSiteConfig writes a site configuration pointing at endpoint with a
// private cache directory.
func writeSiteConfig(t *testing.T, endpoint string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := fmt.Sprintf("api_endpoint: %s\ncache_dir: %s\nretry_delay: 1ms\n", endpoint, filepath.Join(dir, "cache"))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func newTestServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"batchcomplete":true,"query":{"pages":[`+
			`{"pageid":7,"ns":0,"title":"Bar","description":"Another page"},`+
			`{"pageid":8,"ns":0,"title":"Baz"}]}}`)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestRelatedCommand(t *testing.T) {
	server, calls := newTestServer(t)
	configPath := writeSiteConfig(t, server.URL+"/w/api.php")

	t.Run("text output", func(t *testing.T) {
		var out bytes.Buffer
		err := newApp(&out).Run([]string{"readmore", "--config", configPath, "related", "--title", "Foo"})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Found 2 related pages for 'Foo'")
		assert.Contains(t, out.String(), "1: 'Bar' (7) - Another page")
		assert.Contains(t, out.String(), "2: 'Baz' (8)")
	})

	t.Run("second search is served from cache", func(t *testing.T) {
		before := calls.Load()
		var out bytes.Buffer
		err := newApp(&out).Run([]string{"readmore", "--config", configPath, "related", "--title", "Foo"})
		require.NoError(t, err)
		assert.Equal(t, before, calls.Load())
	})

	t.Run("json output", func(t *testing.T) {
		var out bytes.Buffer
		err := newApp(&out).Run([]string{"readmore", "--config", configPath, "related",
			"--title", "Foo", "--curated", "Bar", "--curated", "Baz", "--limit", "1", "--json", "--no-cache"})
		require.NoError(t, err)

		var pages []core.PageSummary
		require.NoError(t, json.Unmarshal(out.Bytes(), &pages))
		require.Len(t, pages, 1)
		assert.Equal(t, "Bar", pages[0].Title)
	})

	t.Run("no source prints nothing found", func(t *testing.T) {
		before := calls.Load()
		var out bytes.Buffer
		err := newApp(&out).Run([]string{"readmore", "--config", configPath, "related", "--title", "Foo", "--search=false"})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Found 0 related pages")
		assert.Equal(t, before, calls.Load())
	})

	t.Run("page config file", func(t *testing.T) {
		pagePath := filepath.Join(t.TempDir(), "page.json")
		require.NoError(t, os.WriteFile(pagePath, []byte(`{"title": "Foo", "curated_pages": ["Baz"]}`), 0o644))

		var out bytes.Buffer
		err := newApp(&out).Run([]string{"readmore", "--config", configPath, "related", "--page-config", pagePath, "--no-cache"})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "1: 'Baz' (8)")
	})

	t.Run("title is required", func(t *testing.T) {
		var out bytes.Buffer
		err := newApp(&out).Run([]string{"readmore", "--config", configPath, "related"})
		assert.Error(t, err)
	})
}

func TestPurgeCacheCommand(t *testing.T) {
	server, _ := newTestServer(t)
	configPath := writeSiteConfig(t, server.URL+"/w/api.php")

	require.NoError(t, newApp(&bytes.Buffer{}).Run([]string{"readmore", "--config", configPath, "related", "--title", "Foo"}))

	var out bytes.Buffer
	require.NoError(t, newApp(&out).Run([]string{"readmore", "--config", configPath, "purge-cache"}))
	assert.Contains(t, out.String(), "Purged 1 cached responses")

	out.Reset()
	require.NoError(t, newApp(&out).Run([]string{"readmore", "--config", configPath, "purge-cache"}))
	assert.Contains(t, out.String(), "Purged 0 cached responses")
}

func TestGateCommand(t *testing.T) {
	configPath := writeSiteConfig(t, "https://en.wikipedia.org/w/api.php")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"article", []string{"--skin", "minerva"}, "show"},
		{"main page", []string{"--skin", "minerva", "--main-page"}, "hide"},
		{"talk page", []string{"--skin", "minerva", "--namespace", "1"}, "hide"},
		{"old revision", []string{"--skin", "minerva", "--oldid", "42"}, "hide"},
		{"other skin", []string{"--skin", "monobook"}, "hide"},
		{"other skin in beta", []string{"--skin", "monobook", "--beta"}, "show"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			args := append([]string{"readmore", "--config", configPath, "gate"}, tt.args...)
			require.NoError(t, newApp(&out).Run(args))
			assert.Equal(t, tt.want+"\n", out.String())
		})
	}

	t.Run("skin is required", func(t *testing.T) {
		err := newApp(&bytes.Buffer{}).Run([]string{"readmore", "--config", configPath, "gate"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "skin")
	})
}

func TestSetupLogger(t *testing.T) {
	app := &cli.App{
		Name:   "readmore",
		Writer: &bytes.Buffer{},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Before: setupLogger,
		Action: func(*cli.Context) error { return nil },
	}

	for _, level := range []string{"debug", "INFO", "warn", "error"} {
		assert.NoError(t, app.Run([]string{"readmore", "--log-level", level}), level)
	}
	err := app.Run([]string{"readmore", "--log-level", "verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
