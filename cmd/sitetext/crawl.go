package main

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sitetext/sitetext"
	"github.com/sitetext/sitetext/crawl"
	"github.com/sitetext/sitetext/fs"
	"github.com/sitetext/sitetext/goquery"
	sitehttp "github.com/sitetext/sitetext/http"
	siteslog "github.com/sitetext/sitetext/slog"
	"github.com/sitetext/sitetext/sqlite"
)

// catalogFile is the name of the catalog database inside the output directory.
const catalogFile = "catalog.db"

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	seedURL := c.URL
	if !strings.Contains(seedURL, "://") {
		seedURL = "https://" + seedURL
	}

	scope, err := sitetext.NewScope(seedURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}

	store, err := fs.NewStore(c.Output)
	if err != nil {
		return err
	}

	userAgent := c.UserAgent
	if userAgent == "" {
		userAgent = sitehttp.DefaultUserAgent
	}

	fetcher := sitehttp.NewFetcher(
		sitehttp.WithTimeout(c.Timeout),
		sitehttp.WithUserAgent(userAgent),
	)

	// A missing or broken robots.txt means no restrictions.
	var robots sitetext.RobotsPolicy
	if policy, err := sitehttp.LoadRobots(deps.Ctx, &http.Client{Timeout: c.Timeout}, seedURL, userAgent); err != nil {
		deps.Logger.Warn("robots.txt unavailable, crawling without restrictions", "err", err)
	} else {
		robots = policy
	}

	var catalog sitetext.CrawlService
	if !c.NoCatalog {
		db := sqlite.NewDB(filepath.Join(c.Output, catalogFile))
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open catalog database: %w", err)
		}
		defer db.Close()
		catalog = sqlite.NewCrawlService(db)
	}

	crawler := &crawl.Crawler{
		Fetcher:     siteslog.NewLoggingFetcher(fetcher, deps.Logger),
		Extractor:   goquery.NewExtractor(scope),
		Store:       siteslog.NewLoggingPageStore(store, deps.Logger),
		Catalog:     catalog,
		Robots:      robots,
		Throttle:    crawl.NewThrottle(c.Delay),
		Logger:      deps.Logger,
		MaxPages:    c.MaxPages,
		Concurrency: c.Concurrency,
		OutputDir:   c.Output,
	}

	result, err := crawler.Run(deps.Ctx, seedURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages to %s (%s)\n", result.Saved, c.Output, crawl.FormatBytes(result.Bytes))
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d pages failed\n", result.Failed)
	}
	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "  %d URLs blocked by robots.txt\n", result.Skipped)
	}
	if result.Status == sitetext.CrawlInterrupted {
		fmt.Fprintln(deps.Stdout, "Crawl interrupted, partial results kept")
	}

	return nil
}
