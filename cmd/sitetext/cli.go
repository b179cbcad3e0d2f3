package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Dependencies holds shared services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Crawl CrawlCmd `cmd:"" help:"Crawl a site and save its pages as text files"`
	Runs  RunsCmd  `cmd:"" help:"List recorded crawl runs"`
	Pages PagesCmd `cmd:"" help:"List the pages a crawl run saved"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string        `arg:"" help:"Seed URL to start crawling from"`
	Output      string        `short:"o" default:"scraped_content" help:"Directory for saved page files"`
	Delay       time.Duration `short:"d" default:"1s" help:"Pause between requests"`
	MaxPages    int           `short:"m" default:"100" help:"Stop after saving this many pages"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent fetch limit"`
	Timeout     time.Duration `short:"t" default:"10s" help:"HTTP request timeout"`
	UserAgent   string        `help:"Override the User-Agent header"`
	NoCatalog   bool          `help:"Skip recording the run in the catalog database"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Dir   string `short:"o" default:"scraped_content" help:"Output directory holding the catalog database"`
	Limit int    `default:"20" help:"Maximum number of runs to show"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	RunID string `arg:"" optional:"" help:"Crawl run ID (defaults to the most recent run)"`
	Dir   string `short:"o" default:"scraped_content" help:"Output directory holding the catalog database"`
}
