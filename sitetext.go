// Package sitetext crawls a single website and saves the readable text of
// each page to a local directory, one file per page.
//
// The package defines the domain types and service interfaces. Concrete
// implementations live in subpackages named after their primary dependency
// or mechanism: goquery (HTML processing), http (fetching and robots.txt),
// fs (page files), sqlite (crawl catalog), crawl (the crawl loop itself).
package sitetext
