package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sitetext/sitetext"
)

// Compile-time interface verification.
var _ sitetext.CrawlService = (*CrawlService)(nil)

// CrawlService implements sitetext.CrawlService using SQLite.
type CrawlService struct {
	db *DB
}

// NewCrawlService creates a new CrawlService.
func NewCrawlService(db *DB) *CrawlService {
	return &CrawlService{db: db}
}

// CreateCrawl registers a new crawl run.
func (s *CrawlService) CreateCrawl(ctx context.Context, crawl *sitetext.Crawl) error {
	if err := crawl.Validate(); err != nil {
		return err
	}

	crawl.ID = uuid.New().String()
	crawl.StartedAt = time.Now().UTC()
	crawl.Status = sitetext.CrawlRunning

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crawls (id, seed_url, domain, output_dir, max_pages, status, pages_saved, pages_failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, 0, ?, '')
	`, crawl.ID, crawl.SeedURL, crawl.Domain, crawl.OutputDir, crawl.MaxPages, crawl.Status,
		crawl.StartedAt.Format(time.RFC3339))

	return err
}

// FinishCrawl finalizes a run's status and counters.
func (s *CrawlService) FinishCrawl(ctx context.Context, id string, status string, saved, failed int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE crawls
		SET status = ?, pages_saved = ?, pages_failed = ?, finished_at = ?
		WHERE id = ?
	`, status, saved, failed, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sitetext.Errorf(sitetext.ENOTFOUND, "crawl not found")
	}

	return nil
}

// FindCrawlByID retrieves a crawl run by ID.
func (s *CrawlService) FindCrawlByID(ctx context.Context, id string) (*sitetext.Crawl, error) {
	var crawl sitetext.Crawl
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, seed_url, domain, output_dir, max_pages, status, pages_saved, pages_failed, started_at, finished_at
		FROM crawls
		WHERE id = ?
	`, id).Scan(&crawl.ID, &crawl.SeedURL, &crawl.Domain, &crawl.OutputDir, &crawl.MaxPages,
		&crawl.Status, &crawl.PagesSaved, &crawl.PagesFailed, &startedAt, &finishedAt)

	if err == sql.ErrNoRows {
		return nil, sitetext.Errorf(sitetext.ENOTFOUND, "crawl not found")
	}
	if err != nil {
		return nil, err
	}

	if crawl.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	// An empty finished_at means the run is still live.
	if finishedAt != "" {
		if crawl.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
	}

	return &crawl, nil
}

// FindCrawls retrieves crawl runs matching the filter, newest first.
func (s *CrawlService) FindCrawls(ctx context.Context, filter sitetext.CrawlFilter) ([]*sitetext.Crawl, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, seed_url, domain, output_dir, max_pages, status, pages_saved, pages_failed, started_at, finished_at FROM crawls WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Domain != nil {
		query.WriteString(" AND domain = ?")
		args = append(args, *filter.Domain)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	// RFC3339 has second precision, so ties fall back to insertion order.
	query.WriteString(" ORDER BY started_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crawls []*sitetext.Crawl
	for rows.Next() {
		var crawl sitetext.Crawl
		var startedAt, finishedAt string

		if err := rows.Scan(&crawl.ID, &crawl.SeedURL, &crawl.Domain, &crawl.OutputDir, &crawl.MaxPages,
			&crawl.Status, &crawl.PagesSaved, &crawl.PagesFailed, &startedAt, &finishedAt); err != nil {
			return nil, err
		}

		if crawl.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if finishedAt != "" {
			if crawl.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
				return nil, err
			}
		}

		crawls = append(crawls, &crawl)
	}

	return crawls, rows.Err()
}

// RecordPage adds a persisted page to a crawl run.
func (s *CrawlService) RecordPage(ctx context.Context, page *sitetext.PageInfo) error {
	if err := page.Validate(); err != nil {
		return err
	}

	page.ID = uuid.New().String()
	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (id, crawl_id, url, title, path, content_hash, size, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, page.ID, page.CrawlID, page.URL, page.Title, page.Path, page.ContentHash,
		page.Size, page.Position, page.FetchedAt.Format(time.RFC3339))

	return err
}

// FindPages retrieves page records matching the filter in save order.
func (s *CrawlService) FindPages(ctx context.Context, filter sitetext.PageFilter) ([]*sitetext.PageInfo, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, crawl_id, url, title, path, content_hash, size, position, fetched_at FROM pages WHERE 1=1")

	if filter.CrawlID != nil {
		query.WriteString(" AND crawl_id = ?")
		args = append(args, *filter.CrawlID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY position ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*sitetext.PageInfo
	for rows.Next() {
		var page sitetext.PageInfo
		var fetchedAt string

		if err := rows.Scan(&page.ID, &page.CrawlID, &page.URL, &page.Title, &page.Path,
			&page.ContentHash, &page.Size, &page.Position, &fetchedAt); err != nil {
			return nil, err
		}

		if page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		pages = append(pages, &page)
	}

	return pages, rows.Err()
}
