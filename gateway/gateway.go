package gateway

import (
	"context"
	"log/slog"

	"github.com/poiesic/readmore/api"
	"github.com/poiesic/readmore/core"
)

// Gateway resolves the related pages of a single page view.
type Gateway struct {
	client            api.QueryClient
	currentPage       string
	curatedPages      []string
	useCirrusSearch   bool
	descriptionSource core.DescriptionSource
	namespaces        []int
	thumbnailSize     int
	trimSearchResults bool
	monitor           Monitor
	logger            *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// WithMonitor sets the monitor notified of every request.
// A nil monitor disables monitoring.
func WithMonitor(monitor Monitor) Option {
	return func(g *Gateway) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		g.monitor = monitor
		return nil
	}
}

// WithTrimSearchResults controls whether search results are cut to the
// requested limit on the client side in addition to the backend's gsrlimit.
// Default is true.
func WithTrimSearchResults(trim bool) Option {
	return func(g *Gateway) error {
		g.trimSearchResults = trim
		return nil
	}
}

// NewGateway creates a gateway for one page view.
// When cfg.OnlyUseCirrusSearch is set the curated pages are dropped here and
// never consulted.
func NewGateway(client api.QueryClient, cfg core.GatewayConfig, opts ...Option) (*Gateway, error) {
	if client == nil {
		return nil, ErrQueryClientRequired
	}
	if err := core.ValidateGatewayConfig(&cfg); err != nil {
		return nil, err
	}

	var curated []string
	if !cfg.OnlyUseCirrusSearch {
		curated = append([]string(nil), cfg.EditorCuratedPages...)
	}

	namespaces := append([]int(nil), cfg.ContentNamespaces...)
	if len(namespaces) == 0 {
		namespaces = []int{0}
	}

	thumbnailSize := cfg.ThumbnailSize
	if thumbnailSize == 0 {
		thumbnailSize = core.DefaultThumbnailSize
	}

	g := &Gateway{
		client:            client,
		currentPage:       cfg.CurrentPageTitle,
		curatedPages:      curated,
		useCirrusSearch:   cfg.UseCirrusSearch,
		descriptionSource: cfg.DescriptionSource,
		namespaces:        namespaces,
		thumbnailSize:     thumbnailSize,
		trimSearchResults: true,
		monitor:           &noopMonitor{},
		logger:            slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// CuratedPages returns the curated titles the gateway will use.
func (g *Gateway) CuratedPages() []string {
	return append([]string(nil), g.curatedPages...)
}

// GetForCurrentPage returns at most limit related pages for the current page.
//
// Curated pages win when there are any; otherwise a similarity search runs
// if it is enabled; otherwise the result is empty and nothing is fetched.
// The result is never nil and no error is ever returned: a failed query is
// logged and reads as an empty response.
func (g *Gateway) GetForCurrentPage(ctx context.Context, limit int) []core.PageSummary {
	g.monitor.Start(limit)

	relatedPages := truncate(g.curatedPages, limit)

	var (
		params  api.Params
		curated bool
	)
	switch {
	case len(relatedPages) > 0:
		curated = true
		params = g.curatedParams(relatedPages)
		g.monitor.CuratedQuery(relatedPages)
	case g.useCirrusSearch:
		params = g.searchParams(limit)
		g.monitor.SearchQuery(g.currentPage)
	default:
		g.logger.Debug("no related pages source", "title", g.currentPage)
		g.monitor.NoSource()
		pages := []core.PageSummary{}
		g.monitor.Finish(pages)
		return pages
	}

	resp, err := g.client.Get(ctx, params)
	if err != nil {
		g.logger.Warn("related pages query failed", "title", g.currentPage, "curated", curated, "err", err)
		g.monitor.QueryFailed(err)
		resp = nil
	}

	pages := ExtractPages(resp)
	if curated {
		pages = orderByTitles(resp, pages, relatedPages)
		pages = pages[:min(len(pages), len(relatedPages))]
	} else if g.trimSearchResults {
		pages = pages[:min(len(pages), max(limit, 0))]
	}

	g.monitor.Finish(pages)
	return pages
}

// truncate returns the first limit titles.
// Non-positive limits yield no titles.
func truncate(titles []string, limit int) []string {
	if limit <= 0 || len(titles) == 0 {
		return nil
	}
	if limit > len(titles) {
		limit = len(titles)
	}
	return titles[:limit:limit]
}
