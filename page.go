package sitetext

import (
	"context"
	"time"
)

// Page is the record produced by processing one successfully fetched page.
// It carries everything the store persists plus the outbound links the
// crawl loop proposes to the frontier.
type Page struct {
	// URL is the canonical URL the page was fetched from.
	URL string

	// Title is the page title, falling back to the first heading and then
	// to a fixed placeholder when the document has neither.
	Title string

	// Content is the readable text with boilerplate subtrees removed and
	// all whitespace runs collapsed to single spaces.
	Content string

	// Links holds the canonical, in-scope outbound links in document
	// order, de-duplicated within the page.
	Links []string

	// ContentHash fingerprints Content for change detection across runs.
	ContentHash string

	// FetchedAt records when the page was retrieved.
	FetchedAt time.Time
}

// Validate returns an error if the page is missing required fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageStore persists pages, one file per page. Save returns the path of
// the file written; saving the same logical page twice produces two files
// with distinct names.
type PageStore interface {
	Save(ctx context.Context, page *Page) (path string, err error)
}
