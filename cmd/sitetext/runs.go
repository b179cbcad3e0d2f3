package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sitetext/sitetext"
	"github.com/sitetext/sitetext/crawl"
	"github.com/sitetext/sitetext/sqlite"
)

// openCatalog opens the catalog database under dir. Unlike a crawl, the
// listing commands never create one.
func openCatalog(dir string) (*sqlite.DB, error) {
	path := filepath.Join(dir, catalogFile)
	if _, err := os.Stat(path); err != nil {
		return nil, sitetext.Errorf(sitetext.ENOTFOUND, "no catalog found at %s", path)
	}

	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	return db, nil
}

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	db, err := openCatalog(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}
	defer db.Close()

	svc := sqlite.NewCrawlService(db)
	crawls, err := svc.FindCrawls(deps.Ctx, sitetext.CrawlFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}

	if len(crawls) == 0 {
		fmt.Fprintln(deps.Stdout, "No crawl runs recorded. Use 'sitetext crawl' to start one.")
		return nil
	}

	for _, run := range crawls {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-11s  %d saved  %d failed  %s\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04"),
			run.Status,
			run.PagesSaved,
			run.PagesFailed,
			crawl.TruncateURL(run.SeedURL, 50),
		)
	}

	return nil
}
