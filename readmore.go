// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package readmore wires the related pages components of one wiki site:
// the query client with its response cache, the gateway and the scroll
// bootstrap.
package readmore

import (
	"context"
	"log/slog"

	"github.com/poiesic/readmore/api"
	"github.com/poiesic/readmore/bootstrap"
	"github.com/poiesic/readmore/config"
	"github.com/poiesic/readmore/gateway"
	"github.com/poiesic/readmore/gating"
	"github.com/poiesic/readmore/storage"
	"github.com/poiesic/readmore/storage/badger"
	"github.com/prometheus/client_golang/prometheus"
)

// Service holds the long-lived resources shared by every page view of a site.
type Service struct {
	site    *config.SiteConfig
	backend *badger.Backend
	cache   storage.ResponseCache
	client  api.QueryClient
	monitor gateway.Monitor
	logger  *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	inMemory   bool
	client     api.QueryClient
	registerer prometheus.Registerer
	logger     *slog.Logger
}

// WithInMemoryCache keeps cached responses in memory instead of the cache
// directory.
func WithInMemoryCache() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// WithQueryClient replaces the HTTP client with client. Responses are
// still cached.
func WithQueryClient(client api.QueryClient) ServiceOption {
	return func(o *serviceOptions) {
		o.client = client
	}
}

// WithRegisterer exports gateway metrics to reg.
func WithRegisterer(reg prometheus.Registerer) ServiceOption {
	return func(o *serviceOptions) {
		o.registerer = reg
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService opens the response cache and builds the query client for
// site. A nil site uses the built-in defaults.
func NewService(site *config.SiteConfig, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	if site == nil {
		defaults, err := config.Defaults()
		if err != nil {
			return nil, err
		}
		site = defaults
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}

	inner := options.client
	if inner == nil {
		httpClient, err := api.NewHTTPClient(site.APIEndpoint,
			api.WithTimeout(site.HTTPTimeout),
			api.WithUserAgent(site.UserAgent),
			api.WithRetry(site.MaxAttempts, site.RetryDelay),
			api.WithLogger(options.logger),
		)
		if err != nil {
			return nil, err
		}
		inner = httpClient
	}

	var monitor gateway.Monitor
	if options.registerer != nil {
		m, err := gateway.NewPrometheusMonitor(options.registerer)
		if err != nil {
			return nil, err
		}
		monitor = m
	}

	// Open backend
	backend, err := badger.OpenBackend(site.CacheDir, options.inMemory)
	if err != nil {
		return nil, err
	}

	cache, err := badger.NewResponseCache(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	client, err := api.NewCachedClient(inner, cache, api.WithCacheLogger(options.logger))
	if err != nil {
		cache.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		site:    site,
		backend: backend,
		cache:   cache,
		client:  client,
		monitor: monitor,
		logger:  options.logger,
	}, nil
}

func (s *Service) Close() error {
	if err := s.cache.Close(); err != nil {
		s.logger.Error("error closing response cache", "err", err)
		return err
	}

	// Close backend
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) Site() *config.SiteConfig {
	return s.site
}

func (s *Service) QueryClient() api.QueryClient {
	return s.client
}

// ShouldShow reports whether page gets the related pages panel.
func (s *Service) ShouldShow(page gating.Page) bool {
	return s.site.Policy().ShouldShow(page)
}

// PurgeCache drops every cached response and returns how many were dropped.
func (s *Service) PurgeCache(ctx context.Context) (int, error) {
	return s.cache.Purge(ctx)
}

// NewGateway creates the gateway of one page view. Options are applied after
// the service's logger and monitor.
func (s *Service) NewGateway(page *config.PageConfig, opts ...gateway.Option) (*gateway.Gateway, error) {
	base := []gateway.Option{gateway.WithLogger(s.logger)}
	if s.monitor != nil {
		base = append(base, gateway.WithMonitor(s.monitor))
	}
	return gateway.NewGateway(s.client, page.GatewayConfig(s.site), append(base, opts...)...)
}

// NewBootstrap creates the gateway and the scroll bootstrap of one page
// view. Options are applied after the site's limit and debounce.
func (s *Service) NewBootstrap(
	page *config.PageConfig,
	viewport bootstrap.Viewport,
	panel bootstrap.Element,
	scrolls bootstrap.ScrollSource,
	loader bootstrap.ModuleLoader,
	publisher bootstrap.Publisher,
	opts ...bootstrap.Option,
) (*bootstrap.Bootstrap, error) {
	g, err := s.NewGateway(page)
	if err != nil {
		return nil, err
	}
	base := []bootstrap.Option{
		bootstrap.WithLogger(s.logger),
		bootstrap.WithLimit(s.site.Limit),
		bootstrap.WithDebounce(s.site.Debounce),
	}
	return bootstrap.New(viewport, panel, scrolls, g, loader, publisher, append(base, opts...)...)
}
