// Package crawl provides the crawl control core: the FIFO frontier, the
// politeness throttle, and the driver loop that ties fetching, extraction,
// and persistence together.
package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sitetext/sitetext"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxPages bounds a crawl when no page budget is configured.
const DefaultMaxPages = 100

// finishTimeout bounds the catalog update after the crawl loop has ended.
const finishTimeout = 5 * time.Second

// Crawler drives a single-site crawl. It pulls URLs from the frontier,
// applies the robots and politeness gates, delegates fetching and
// extraction to its collaborators, persists the results, and feeds
// discovered links back into the frontier.
type Crawler struct {
	Fetcher   sitetext.Fetcher
	Extractor sitetext.Extractor
	Store     sitetext.PageStore

	// Catalog, when set, records the run and each saved page.
	Catalog sitetext.CrawlService

	// Robots is the site's robots exclusion policy. A nil policy grants
	// full permission; the caller decides whether a load failure warrants
	// that (it does, the gate fails open).
	Robots sitetext.RobotsPolicy

	// Throttle paces requests to the host. A nil Throttle disables pacing.
	Throttle sitetext.Pacer

	// Frontier defaults to an in-memory FIFO frontier when nil.
	Frontier sitetext.Frontier

	// Logger receives per-page progress. Defaults to a discarding logger.
	Logger *slog.Logger

	// MaxPages bounds the number of pages persisted. Zero or negative
	// selects DefaultMaxPages.
	MaxPages int

	// Concurrency is the number of fetch workers. Values of one or less
	// select the strictly sequential loop, which processes the site in
	// breadth-first order with at most one request in flight.
	Concurrency int

	// OutputDir is recorded on the catalog run row.
	OutputDir string
}

// Result holds the outcome of a finished crawl.
type Result struct {
	// CrawlID identifies the catalog run row, when a catalog was used.
	CrawlID string

	Saved   int // pages fetched, extracted, and persisted
	Failed  int // fetch attempts that produced no saved page
	Skipped int // URLs blocked by robots rules
	Bytes   int // total text bytes persisted

	// Status is sitetext.CrawlCompleted, or sitetext.CrawlInterrupted if
	// the context was canceled before the frontier drained.
	Status string
}

// workResult holds the outcome of processing a single URL.
type workResult struct {
	url  string
	page *sitetext.Page
	err  error
}

// Run crawls the site reachable from seedURL until the frontier drains or
// the page budget is reached. Per-page failures are logged and skipped;
// Run itself fails only when the seed is unusable or the catalog cannot
// register the run.
func (c *Crawler) Run(ctx context.Context, seedURL string) (*Result, error) {
	seed := sitetext.Canonicalize(seedURL)
	scope, err := sitetext.NewScope(seed)
	if err != nil {
		return nil, err
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	frontier := c.Frontier
	if frontier == nil {
		frontier = NewFrontier()
	}
	frontier.Seed(seed)

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	run := &sitetext.Crawl{
		SeedURL:   seed,
		Domain:    scope.Domain,
		OutputDir: c.OutputDir,
		MaxPages:  maxPages,
	}
	if c.Catalog != nil {
		if err := c.Catalog.CreateCrawl(ctx, run); err != nil {
			return nil, fmt.Errorf("register crawl run: %w", err)
		}
	}

	logger.Info("crawl started", "seed", seed, "domain", scope.Domain, "max_pages", maxPages)

	result := &Result{CrawlID: run.ID, Status: sitetext.CrawlCompleted}
	if c.Concurrency > 1 {
		c.runWorkers(ctx, frontier, maxPages, run.ID, logger, result)
	} else {
		c.runSequential(ctx, frontier, maxPages, run.ID, logger, result)
	}

	if ctx.Err() != nil {
		result.Status = sitetext.CrawlInterrupted
	}

	if c.Catalog != nil {
		// The run context may already be canceled after an interrupt, but
		// the run row must still be finalized.
		finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finishTimeout)
		defer cancel()
		if err := c.Catalog.FinishCrawl(finishCtx, run.ID, result.Status, result.Saved, result.Failed); err != nil {
			logger.Warn("finalize crawl run", "crawl", run.ID, "err", err)
		}
	}

	logger.Info("crawl finished",
		"status", result.Status,
		"saved", result.Saved,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}

// runSequential is the reference crawl loop: one request in flight,
// breadth-first frontier order, and an unconditional politeness pause
// after every fetch attempt. URLs the robots policy blocks never reach
// the network and incur no pause.
func (c *Crawler) runSequential(ctx context.Context, frontier sitetext.Frontier, maxPages int, crawlID string, logger *slog.Logger, result *Result) {
	for result.Saved < maxPages {
		if ctx.Err() != nil {
			return
		}

		u, ok := frontier.Next()
		if !ok {
			return
		}
		frontier.MarkVisited(u)

		if !c.allowed(u) {
			result.Skipped++
			logger.Warn("blocked by robots.txt", "url", u)
			continue
		}

		page, err := c.processURL(ctx, u)
		switch {
		case err != nil && ctx.Err() != nil:
			return
		case err != nil:
			result.Failed++
			logger.Warn("page skipped", "url", u, "code", sitetext.ErrorCode(err), "err", err)
		default:
			c.keep(ctx, crawlID, page, logger, result, frontier)
		}

		if err := c.pause(ctx); err != nil {
			return
		}
	}
}

// runWorkers crawls with a bounded worker pool. The coordinator goroutine
// owns the frontier and all counters; workers only fetch and extract, so
// admission stays a single serialized choke point and the page budget
// cannot be overshot. Breadth-first ordering becomes approximate because
// results return in completion order.
func (c *Crawler) runWorkers(ctx context.Context, frontier sitetext.Frontier, maxPages int, crawlID string, logger *slog.Logger, result *Result) {
	workCh := make(chan string)
	resultCh := make(chan workResult)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < c.Concurrency; i++ {
		g.Go(func() error {
			for u := range workCh {
				page, err := c.processURL(gctx, u)
				select {
				case resultCh <- workResult{url: u, page: page, err: err}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	// Close the result channel once all workers have exited.
	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	handle := func(r workResult) {
		if gctx.Err() != nil {
			return
		}
		if r.err != nil {
			result.Failed++
			logger.Warn("page skipped", "url", r.url, "code", sitetext.ErrorCode(r.err), "err", r.err)
			return
		}
		c.keep(gctx, crawlID, r.page, logger, result, frontier)
	}

	var next string
	var haveNext bool
	fetchNext := func() {
		for !haveNext {
			u, ok := frontier.Next()
			if !ok {
				return
			}
			frontier.MarkVisited(u)
			if !c.allowed(u) {
				result.Skipped++
				logger.Warn("blocked by robots.txt", "url", u)
				continue
			}
			next, haveNext = u, true
		}
	}

	pending := 0
	fetchNext()

coordinatorLoop:
	for {
		if gctx.Err() != nil {
			break coordinatorLoop
		}

		canDispatch := haveNext && result.Saved+pending < maxPages
		if !canDispatch && pending == 0 {
			break coordinatorLoop
		}

		if canDispatch {
			select {
			case <-gctx.Done():
				break coordinatorLoop
			case workCh <- next:
				pending++
				haveNext = false
			case r := <-resultCh:
				pending--
				handle(r)
			}
		} else {
			select {
			case <-gctx.Done():
				break coordinatorLoop
			case r := <-resultCh:
				pending--
				handle(r)
			}
		}

		if !haveNext {
			fetchNext()
		}
	}

	// Signal workers to stop and drain results still in flight.
	close(workCh)
	for r := range resultCh {
		pending--
		handle(r)
	}
}

// processURL performs one paced fetch attempt and turns the response into
// a Page. The error carries a sitetext error code classifying the failure.
func (c *Crawler) processURL(ctx context.Context, u string) (*sitetext.Page, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	res, err := c.Fetcher.Fetch(ctx, u)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EUNAVAILABLE, "fetch %s: %v", u, err)
	}
	if !res.OK() {
		code := sitetext.EUNAVAILABLE
		if res.StatusCode == http.StatusNotFound {
			code = sitetext.ENOTFOUND
		}
		return nil, sitetext.Errorf(code, "fetch %s: HTTP %d", u, res.StatusCode)
	}
	if !res.IsHTML() {
		return nil, sitetext.Errorf(sitetext.EUNSUPPORTED, "fetch %s: content type %q", u, res.ContentType)
	}

	page, err := c.Extractor.Extract(string(res.Body), u)
	if err != nil {
		return nil, err
	}
	page.ContentHash = computeHash(page.Content)
	page.FetchedAt = time.Now().UTC()
	return page, nil
}

// keep persists a processed page, records it in the catalog, admits its
// links, and updates the counters. Links are admitted only for pages that
// actually persisted.
func (c *Crawler) keep(ctx context.Context, crawlID string, page *sitetext.Page, logger *slog.Logger, result *Result, frontier sitetext.Frontier) {
	path, err := c.Store.Save(ctx, page)
	if err != nil {
		result.Failed++
		logger.Warn("page skipped", "url", page.URL, "code", sitetext.ErrorCode(err), "err", err)
		return
	}

	if c.Catalog != nil {
		info := &sitetext.PageInfo{
			CrawlID:     crawlID,
			URL:         page.URL,
			Title:       page.Title,
			Path:        path,
			ContentHash: page.ContentHash,
			Size:        len(page.Content),
			Position:    result.Saved,
			FetchedAt:   page.FetchedAt,
		}
		if err := c.Catalog.RecordPage(ctx, info); err != nil {
			// The file is on disk; a catalog miss must not fail the page.
			logger.Warn("catalog record failed", "url", page.URL, "err", err)
		}
	}

	admitted := 0
	for _, link := range page.Links {
		if frontier.Admit(link) {
			admitted++
		}
	}

	result.Saved++
	result.Bytes += len(page.Content)
	logger.Info("page saved",
		"url", page.URL,
		"title", page.Title,
		"path", path,
		"links", len(page.Links),
		"admitted", admitted,
	)
}

// allowed applies the robots policy; a nil policy fails open.
func (c *Crawler) allowed(u string) bool {
	if c.Robots == nil {
		return true
	}
	return c.Robots.Allowed(u)
}

// wait applies the start gate; a nil throttle does not pace.
func (c *Crawler) wait(ctx context.Context) error {
	if c.Throttle == nil {
		return ctx.Err()
	}
	return c.Throttle.Wait(ctx)
}

// pause applies the post-attempt delay; a nil throttle does not pace.
func (c *Crawler) pause(ctx context.Context) error {
	if c.Throttle == nil {
		return ctx.Err()
	}
	return c.Throttle.Pause(ctx)
}

// computeHash fingerprints page text using xxhash.
func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}
