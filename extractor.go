package sitetext

// Extractor turns fetched HTML into a Page: title, readable text, and the
// canonical in-scope outbound links. Extraction is a pure transformation
// of one document; admitting links to the crawl stays with the caller.
type Extractor interface {
	Extract(html string, pageURL string) (*Page, error)
}
