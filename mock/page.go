package mock

import (
	"context"

	"github.com/sitetext/sitetext"
)

var _ sitetext.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of sitetext.PageStore.
type PageStore struct {
	SaveFn func(ctx context.Context, page *sitetext.Page) (string, error)
}

func (s *PageStore) Save(ctx context.Context, page *sitetext.Page) (string, error) {
	return s.SaveFn(ctx, page)
}
