// Package http provides the network-facing collaborators of a crawl:
// the page fetcher and the robots.txt loader.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sitetext/sitetext"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for a single page request.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent mimics a desktop browser; some sites refuse obvious bots.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultMaxBodySize caps how many response bytes are read per page.
const DefaultMaxBodySize = 10 << 20 // 10 MB

// Ensure Fetcher implements sitetext.Fetcher at compile time.
var _ sitetext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with plain HTTP GET requests. It performs no
// retries; a failed fetch is reported once and abandoned.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps the number of response bytes read per page.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the given URL and returns the response envelope. Only
// transport-level failures return an error; HTTP error statuses and
// unexpected content types are policy decisions left to the caller and
// come back inside the result.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*sitetext.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "build request for %s: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")

	// Decode legacy charsets to UTF-8 before the bytes reach the HTML
	// parser. Non-HTML bodies pass through untouched; the crawl loop
	// rejects them by content type.
	var body io.Reader = io.LimitReader(resp.Body, f.maxBodySize)
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		if decoded, cerr := charset.NewReader(body, contentType); cerr == nil {
			body = decoded
		}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	return &sitetext.FetchResult{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        data,
	}, nil
}
