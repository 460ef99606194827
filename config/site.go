package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/poiesic/readmore/core"
	"github.com/poiesic/readmore/gating"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// SiteConfig is the per-wiki configuration shared by every page view.
type SiteConfig struct {
	APIEndpoint string        `yaml:"api_endpoint"`
	UserAgent   string        `yaml:"user_agent,omitempty"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
	CacheDir    string        `yaml:"cache_dir,omitempty"`

	Limit             int                    `yaml:"limit"`
	ThumbnailSize     int                    `yaml:"thumbnail_size"`
	DescriptionSource core.DescriptionSource `yaml:"description_source"`
	ContentNamespaces []int                  `yaml:"content_namespaces"`
	Debounce          time.Duration          `yaml:"debounce"`

	Skins        []string `yaml:"skins"`
	BetaRequired bool     `yaml:"beta_required"`
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "readmore", "config.yaml")
}

// DefaultCacheDir returns the per-user response cache directory.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "readmore")
}

// Defaults returns the built-in site configuration.
func Defaults() (*SiteConfig, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg SiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	cfg.CacheDir = DefaultCacheDir()
	return &cfg, nil
}

// Load reads the site configuration at path, or at DefaultConfigPath when
// path is empty. Settings missing from the file keep their defaults. A
// missing file yields the defaults.
func Load(path string) (*SiteConfig, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories.
func (c *SiteConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the configuration for values the service cannot use.
func (c *SiteConfig) Validate() error {
	u, err := url.Parse(c.APIEndpoint)
	if err != nil {
		return fmt.Errorf("%w: api_endpoint: %w", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api_endpoint scheme must be http or https, got %q", ErrInvalidConfig, u.Scheme)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: http_timeout must be positive", ErrInvalidConfig)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max_attempts must be at least 1", ErrInvalidConfig)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry_delay must not be negative", ErrInvalidConfig)
	}
	if c.Limit < 1 {
		return fmt.Errorf("%w: limit must be at least 1", ErrInvalidConfig)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("%w: debounce must not be negative", ErrInvalidConfig)
	}
	if err := core.ValidateDescriptionSource(c.DescriptionSource); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.ThumbnailSize < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, core.ErrInvalidThumbnailSize)
	}
	for _, ns := range c.ContentNamespaces {
		if ns < 0 {
			return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, core.ErrInvalidNamespace, ns)
		}
	}
	return nil
}

// Policy returns the panel gating policy of the site.
func (c *SiteConfig) Policy() gating.Policy {
	return gating.Policy{
		Namespaces:   c.ContentNamespaces,
		Skins:        c.Skins,
		BetaRequired: c.BetaRequired,
	}
}
