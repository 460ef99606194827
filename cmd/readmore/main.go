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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/readmore"
	"github.com/poiesic/readmore/config"
	"github.com/poiesic/readmore/core"
	"github.com/poiesic/readmore/gating"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "readmore",
		Usage:  "Related pages lookup for wiki articles",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to site configuration file (default: " + config.DefaultConfigPath() + ")",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "related",
				Usage:  "Show the related pages of an article",
				Action: relatedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "title",
						Aliases: []string{"t"},
						Usage:   "Title of the current article",
					},
					&cli.StringFlag{
						Name:  "page-config",
						Usage: "Path to a page configuration file (YAML or JSON); overrides the page flags",
					},
					&cli.StringSliceFlag{
						Name:  "curated",
						Usage: "Editor-curated related page title (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "search",
						Usage: "Fall back to similarity search when there are no curated pages",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "only-search",
						Usage: "Ignore curated pages and always use similarity search",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of related pages (default: site limit)",
					},
					&cli.StringFlag{
						Name:  "description-source",
						Usage: "Description source (wikidata, textextracts, pagedescription)",
					},
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "Do not use the on-disk response cache",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the pages as JSON",
					},
				},
			},
			{
				Name:   "purge-cache",
				Usage:  "Remove all cached query responses",
				Action: purgeCacheCommand,
			},
			{
				Name:   "gate",
				Usage:  "Check whether a page view gets the related pages panel",
				Action: gateCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "namespace",
						Usage: "Namespace of the page",
					},
					&cli.BoolFlag{
						Name:  "main-page",
						Usage: "The page is the main page",
					},
					&cli.BoolFlag{
						Name:  "disambiguation",
						Usage: "The page is a disambiguation page",
					},
					&cli.StringFlag{
						Name:  "action",
						Usage: "Page action",
						Value: "view",
					},
					&cli.BoolFlag{
						Name:  "diff",
						Usage: "A revision comparison is shown",
					},
					&cli.Int64Flag{
						Name:  "oldid",
						Usage: "Revision being viewed, 0 for the current one",
					},
					&cli.StringFlag{
						Name:     "skin",
						Usage:    "Skin of the page view",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "beta",
						Usage: "The reader opted in to beta features",
					},
				},
			},
		},
	}
}

func loadSite(c *cli.Context) (*config.SiteConfig, error) {
	site, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return site, nil
}

func pageConfig(c *cli.Context) (*config.PageConfig, error) {
	if path := c.String("page-config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read page configuration: %w", err)
		}
		return config.ParsePageConfig(data)
	}

	page := &config.PageConfig{
		Title:               c.String("title"),
		CuratedPages:        c.StringSlice("curated"),
		UseCirrusSearch:     c.Bool("search"),
		OnlyUseCirrusSearch: c.Bool("only-search"),
		EnabledSampleRate:   1,
		DescriptionSource:   core.DescriptionSource(c.String("description-source")),
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

func relatedCommand(c *cli.Context) error {
	ctx := context.Background()

	site, err := loadSite(c)
	if err != nil {
		return err
	}
	page, err := pageConfig(c)
	if err != nil {
		return err
	}

	var opts []readmore.ServiceOption
	if c.Bool("no-cache") {
		opts = append(opts, readmore.WithInMemoryCache())
	}
	svc, err := readmore.NewService(site, opts...)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	g, err := svc.NewGateway(page)
	if err != nil {
		return fmt.Errorf("failed to create gateway: %w", err)
	}

	limit := site.Limit
	if c.IsSet("limit") {
		limit = c.Int("limit")
	}

	pages := g.GetForCurrentPage(ctx, limit)

	out := c.App.Writer
	if c.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(pages)
	}

	fmt.Fprintf(out, "Found %d related pages for '%s'\n", len(pages), page.Title)
	for i, p := range pages {
		line := fmt.Sprintf("%d: '%s' (%d)", i+1, p.Title, p.PageID)
		if p.Description != "" {
			line += " - " + p.Description
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func purgeCacheCommand(c *cli.Context) error {
	site, err := loadSite(c)
	if err != nil {
		return err
	}

	svc, err := readmore.NewService(site)
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	n, err := svc.PurgeCache(context.Background())
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Purged %d cached responses from %s\n", n, site.CacheDir)
	return nil
}

func gateCommand(c *cli.Context) error {
	site, err := loadSite(c)
	if err != nil {
		return err
	}

	page := gating.Page{
		Namespace:        c.Int("namespace"),
		IsMainPage:       c.Bool("main-page"),
		IsDisambiguation: c.Bool("disambiguation"),
		Action:           c.String("action"),
		IsDiff:           c.Bool("diff"),
		OldID:            c.Int64("oldid"),
		Skin:             c.String("skin"),
		BetaOptIn:        c.Bool("beta"),
	}

	if site.Policy().ShouldShow(page) {
		fmt.Fprintln(c.App.Writer, "show")
	} else {
		fmt.Fprintln(c.App.Writer, "hide")
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
