package gateway

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/poiesic/readmore/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMonitor records monitor calls in order
type recordingMonitor struct {
	mu      sync.Mutex
	events  []string
	curated [][]string
	errs    []error
}

var _ Monitor = (*recordingMonitor)(nil)

func (r *recordingMonitor) record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingMonitor) Start(_ int) { r.record("start") }

func (r *recordingMonitor) CuratedQuery(titles []string) {
	r.mu.Lock()
	r.curated = append(r.curated, titles)
	r.mu.Unlock()
	r.record("curated")
}

func (r *recordingMonitor) SearchQuery(_ string) { r.record("search") }

func (r *recordingMonitor) NoSource() { r.record("none") }

func (r *recordingMonitor) QueryFailed(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
	r.record("failed")
}

func (r *recordingMonitor) Finish(pages []core.PageSummary) {
	r.record(fmt.Sprintf("finish:%d", len(pages)))
}

func TestMonitor_Sources(t *testing.T) {
	tests := []struct {
		name   string
		cfg    core.GatewayConfig
		events []string
	}{
		{
			name:   "curated",
			cfg:    core.GatewayConfig{CurrentPageTitle: "Foo", EditorCuratedPages: []string{"Cat", "Dog"}, UseCirrusSearch: true},
			events: []string{"start", "curated", "finish:2"},
		},
		{
			name:   "search",
			cfg:    core.GatewayConfig{CurrentPageTitle: "Foo", UseCirrusSearch: true},
			events: []string{"start", "search", "finish:3"},
		},
		{
			name:   "no source",
			cfg:    core.GatewayConfig{CurrentPageTitle: "Foo"},
			events: []string{"start", "none", "finish:0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monitor := &recordingMonitor{}
			g, err := NewGateway(&testQueryClient{respond: echoTitles}, tt.cfg, WithMonitor(monitor))
			require.NoError(t, err)

			g.GetForCurrentPage(context.Background(), 3)
			assert.Equal(t, tt.events, monitor.events)
		})
	}
}

func TestMonitor_CuratedTitlesAreTruncated(t *testing.T) {
	monitor := &recordingMonitor{}
	g, err := NewGateway(&testQueryClient{respond: echoTitles}, core.GatewayConfig{
		CurrentPageTitle:   "Foo",
		EditorCuratedPages: []string{"Cat", "Dog", "Bird"},
	}, WithMonitor(monitor))
	require.NoError(t, err)

	g.GetForCurrentPage(context.Background(), 1)
	require.Len(t, monitor.curated, 1)
	assert.Equal(t, []string{"Cat"}, monitor.curated[0])
}
