package config

import (
	"fmt"

	"github.com/poiesic/readmore/core"
	"gopkg.in/yaml.v3"
)

// PageConfig is the configuration embedded in a rendered page.
type PageConfig struct {
	Title string `yaml:"title" json:"title"`
	// CuratedPages is nil when the page carries no curated list.
	CuratedPages        []string               `yaml:"curated_pages" json:"curated_pages"`
	UseCirrusSearch     bool                   `yaml:"use_cirrus_search" json:"use_cirrus_search"`
	OnlyUseCirrusSearch bool                   `yaml:"only_use_cirrus_search" json:"only_use_cirrus_search"`
	LoggingSampleRate   float64                `yaml:"logging_sample_rate" json:"logging_sample_rate"`
	EnabledSampleRate   float64                `yaml:"enabled_sample_rate" json:"enabled_sample_rate"`
	DescriptionSource   core.DescriptionSource `yaml:"description_source,omitempty" json:"description_source,omitempty"`
}

// ParsePageConfig decodes a page configuration from YAML or JSON.
// An absent enabled_sample_rate enables the panel for everyone.
func ParsePageConfig(data []byte) (*PageConfig, error) {
	cfg := &PageConfig{EnabledSampleRate: 1}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPageConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the page configuration.
func (p *PageConfig) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPageConfig, core.ErrEmptyTitle)
	}
	if p.LoggingSampleRate < 0 || p.LoggingSampleRate > 1 {
		return fmt.Errorf("%w: logging_sample_rate %v out of range [0, 1]", ErrInvalidPageConfig, p.LoggingSampleRate)
	}
	if p.EnabledSampleRate < 0 || p.EnabledSampleRate > 1 {
		return fmt.Errorf("%w: enabled_sample_rate %v out of range [0, 1]", ErrInvalidPageConfig, p.EnabledSampleRate)
	}
	if err := core.ValidateDescriptionSource(p.DescriptionSource); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPageConfig, err)
	}
	return nil
}

// GatewayConfig combines the page configuration with the site defaults.
// A description source set on the page overrides the site's.
func (p *PageConfig) GatewayConfig(site *SiteConfig) core.GatewayConfig {
	cfg := core.GatewayConfig{
		CurrentPageTitle:    p.Title,
		EditorCuratedPages:  append([]string(nil), p.CuratedPages...),
		UseCirrusSearch:     p.UseCirrusSearch,
		OnlyUseCirrusSearch: p.OnlyUseCirrusSearch,
		DescriptionSource:   p.DescriptionSource,
	}
	if site != nil {
		if cfg.DescriptionSource == core.DescriptionNone {
			cfg.DescriptionSource = site.DescriptionSource
		}
		cfg.ContentNamespaces = append([]int(nil), site.ContentNamespaces...)
		cfg.ThumbnailSize = site.ThumbnailSize
	}
	return cfg
}

// Enabled reports whether the panel is shown to the reader identified by
// token.
func (p *PageConfig) Enabled(token string) bool {
	return InSample(p.EnabledSampleRate, token)
}

// Logged reports whether panel events of the reader identified by token
// are logged.
func (p *PageConfig) Logged(token string) bool {
	return InSample(p.LoggingSampleRate, token)
}
