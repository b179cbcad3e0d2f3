package main

import (
	"fmt"

	"github.com/sitetext/sitetext"
	"github.com/sitetext/sitetext/crawl"
	"github.com/sitetext/sitetext/sqlite"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	db, err := openCatalog(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}
	defer db.Close()

	svc := sqlite.NewCrawlService(db)

	var run *sitetext.Crawl
	if c.RunID != "" {
		run, err = svc.FindCrawlByID(deps.Ctx, c.RunID)
	} else {
		var crawls []*sitetext.Crawl
		crawls, err = svc.FindCrawls(deps.Ctx, sitetext.CrawlFilter{Limit: 1})
		if err == nil {
			if len(crawls) == 0 {
				err = sitetext.Errorf(sitetext.ENOTFOUND, "no crawl runs recorded")
			} else {
				run = crawls[0]
			}
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}

	pages, err := svc.FindPages(deps.Ctx, sitetext.PageFilter{CrawlID: &run.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintf(deps.Stdout, "Run %s saved no pages.\n", run.ID)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Pages for %s run %s (%d total):\n\n", run.Domain, run.ID, len(pages))
	for i, p := range pages {
		title := p.Title
		if title == "" {
			title = p.URL
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n     %s (%s)\n",
			i+1, title, crawl.TruncateURL(p.URL, 70), p.Path, crawl.FormatBytes(p.Size))
	}

	return nil
}
