package sitetext

import (
	"context"
	"strings"
)

// FetchResult is the raw outcome of a single page request. The crawl loop,
// not the fetcher, decides how non-2xx statuses and non-HTML bodies are
// treated.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports whether the response status is in the 2xx range.
func (r *FetchResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsHTML reports whether the response declared an HTML content type.
func (r *FetchResult) IsHTML() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "text/html")
}

// Fetcher retrieves raw page bytes. Fetch returns an error only for
// transport-level failures such as refused connections and timeouts; HTTP
// error statuses come back as a FetchResult.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}
