package mock

import (
	"context"

	"github.com/sitetext/sitetext"
)

var _ sitetext.CrawlService = (*CrawlService)(nil)

// CrawlService is a mock implementation of sitetext.CrawlService.
type CrawlService struct {
	CreateCrawlFn   func(ctx context.Context, crawl *sitetext.Crawl) error
	FinishCrawlFn   func(ctx context.Context, id string, status string, saved, failed int) error
	FindCrawlByIDFn func(ctx context.Context, id string) (*sitetext.Crawl, error)
	FindCrawlsFn    func(ctx context.Context, filter sitetext.CrawlFilter) ([]*sitetext.Crawl, error)
	RecordPageFn    func(ctx context.Context, page *sitetext.PageInfo) error
	FindPagesFn     func(ctx context.Context, filter sitetext.PageFilter) ([]*sitetext.PageInfo, error)
}

func (s *CrawlService) CreateCrawl(ctx context.Context, crawl *sitetext.Crawl) error {
	return s.CreateCrawlFn(ctx, crawl)
}

func (s *CrawlService) FinishCrawl(ctx context.Context, id string, status string, saved, failed int) error {
	return s.FinishCrawlFn(ctx, id, status, saved, failed)
}

func (s *CrawlService) FindCrawlByID(ctx context.Context, id string) (*sitetext.Crawl, error) {
	return s.FindCrawlByIDFn(ctx, id)
}

func (s *CrawlService) FindCrawls(ctx context.Context, filter sitetext.CrawlFilter) ([]*sitetext.Crawl, error) {
	return s.FindCrawlsFn(ctx, filter)
}

func (s *CrawlService) RecordPage(ctx context.Context, page *sitetext.PageInfo) error {
	return s.RecordPageFn(ctx, page)
}

func (s *CrawlService) FindPages(ctx context.Context, filter sitetext.PageFilter) ([]*sitetext.PageInfo, error) {
	return s.FindPagesFn(ctx, filter)
}
