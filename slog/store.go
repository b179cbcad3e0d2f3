package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sitetext/sitetext"
)

// Ensure LoggingPageStore implements sitetext.PageStore.
var _ sitetext.PageStore = (*LoggingPageStore)(nil)

// LoggingPageStore wraps a PageStore with debug logging.
type LoggingPageStore struct {
	next   sitetext.PageStore
	logger *slog.Logger
}

// NewLoggingPageStore creates a new LoggingPageStore.
func NewLoggingPageStore(next sitetext.PageStore, logger *slog.Logger) *LoggingPageStore {
	return &LoggingPageStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs the operation.
func (s *LoggingPageStore) Save(ctx context.Context, page *sitetext.Page) (path string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save page",
			"url", page.URL,
			"path", path,
			"bytes", len(page.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, page)
}
