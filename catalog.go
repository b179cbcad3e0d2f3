package sitetext

import (
	"context"
	"time"
)

// Crawl run statuses.
const (
	CrawlRunning     = "running"
	CrawlCompleted   = "completed"
	CrawlInterrupted = "interrupted"
)

// Crawl represents one crawl run over a site.
type Crawl struct {
	ID        string
	SeedURL   string
	Domain    string
	OutputDir string
	MaxPages  int

	// Status is CrawlRunning while the run is live and CrawlCompleted or
	// CrawlInterrupted once it has finished.
	Status string

	PagesSaved  int
	PagesFailed int

	StartedAt  time.Time
	FinishedAt time.Time // zero while the run is live
}

// Validate returns an error if the crawl is missing required fields.
func (c *Crawl) Validate() error {
	if c.SeedURL == "" {
		return Errorf(EINVALID, "crawl seed URL required")
	}
	if c.Domain == "" {
		return Errorf(EINVALID, "crawl domain required")
	}
	return nil
}

// PageInfo describes one persisted page within a crawl run.
type PageInfo struct {
	ID      string
	CrawlID string

	URL   string
	Title string

	// Path is the location of the saved file.
	Path string

	// ContentHash fingerprints the saved text.
	ContentHash string

	// Size is the saved text length in bytes.
	Size int

	// Position is the zero-based save order within the run.
	Position int

	FetchedAt time.Time
}

// Validate returns an error if the page record is missing required fields.
func (p *PageInfo) Validate() error {
	if p.CrawlID == "" {
		return Errorf(EINVALID, "page crawl ID required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// CrawlFilter selects crawl runs in FindCrawls.
type CrawlFilter struct {
	ID     *string
	Domain *string
	Status *string

	Offset int
	Limit  int
}

// PageFilter selects page records in FindPages.
type PageFilter struct {
	CrawlID *string
	URL     *string

	Offset int
	Limit  int
}

// CrawlService records crawl runs and the pages they persist.
type CrawlService interface {
	// CreateCrawl registers a new run. The implementation assigns the ID,
	// the start time, and the CrawlRunning status.
	CreateCrawl(ctx context.Context, crawl *Crawl) error

	// FinishCrawl finalizes a run's status and counters. Returns
	// ENOTFOUND if no run has the given ID.
	FinishCrawl(ctx context.Context, id string, status string, saved, failed int) error

	// FindCrawlByID returns the run with the given ID. Returns ENOTFOUND
	// if it does not exist.
	FindCrawlByID(ctx context.Context, id string) (*Crawl, error)

	// FindCrawls returns runs matching the filter, newest first.
	FindCrawls(ctx context.Context, filter CrawlFilter) ([]*Crawl, error)

	// RecordPage adds a persisted page to a run. The implementation
	// assigns the ID.
	RecordPage(ctx context.Context, page *PageInfo) error

	// FindPages returns page records matching the filter in save order.
	FindPages(ctx context.Context, filter PageFilter) ([]*PageInfo, error)
}
