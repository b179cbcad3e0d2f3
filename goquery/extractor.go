// Package goquery implements HTML page processing on top of the goquery
// document API: title and text extraction plus outbound link discovery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitetext/sitetext"
)

// Compile-time interface verification.
var _ sitetext.Extractor = (*Extractor)(nil)

// boilerplateSelector matches subtrees that carry page chrome rather than
// readable content.
const boilerplateSelector = "script, style, nav, footer, header"

// untitledPage is the title recorded for documents with no title or heading.
const untitledPage = "Untitled Page"

// Extractor turns fetched HTML into a sitetext.Page. Anchors are resolved
// against the page URL, canonicalized, and filtered to the crawl scope;
// admission to the crawl stays with the caller.
type Extractor struct {
	scope sitetext.Scope
}

// NewExtractor creates an Extractor bound to a crawl scope.
func NewExtractor(scope sitetext.Scope) *Extractor {
	return &Extractor{scope: scope}
}

// Extract parses HTML and builds the page record for pageURL.
func (e *Extractor) Extract(html string, pageURL string) (*sitetext.Page, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "failed to parse HTML: %v", err)
	}

	// Title and links come from the intact document: the heading fallback
	// and many anchors live inside subtrees that text extraction removes.
	title := pageTitle(doc)
	links := e.extractLinks(doc, base)

	doc.Find(boilerplateSelector).Remove()
	content := collapseWhitespace(doc.Text())

	return &sitetext.Page{
		URL:     pageURL,
		Title:   title,
		Content: content,
		Links:   links,
	}, nil
}

// pageTitle returns the first non-empty of the document title and the first
// heading, falling back to a fixed placeholder.
func pageTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if h := strings.TrimSpace(doc.Find("h1").First().Text()); h != "" {
		return h
	}
	return untitledPage
}

// collapseWhitespace flattens every whitespace run, including line breaks,
// to a single space and trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// extractLinks returns the canonical in-scope URL of every anchor in the
// document, in document order, de-duplicated within the page.
func (e *Extractor) extractLinks(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		canonical := sitetext.Canonicalize(resolved)
		if !e.scope.Allows(canonical) {
			return
		}

		if _, ok := seen[canonical]; ok {
			return
		}
		seen[canonical] = struct{}{}
		links = append(links, canonical)
	})

	return links
}

// resolveURL resolves a relative URL against a base URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
