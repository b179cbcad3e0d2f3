package mock

import "github.com/sitetext/sitetext"

var _ sitetext.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitetext.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*sitetext.Page, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*sitetext.Page, error) {
	return e.ExtractFn(html, pageURL)
}
