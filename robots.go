package sitetext

// RobotsPolicy is a site's robots exclusion rule set, loaded once before
// the crawl starts and consulted for every URL before it is fetched. The
// crawl loop treats a nil policy as full permission: when the rules cannot
// be loaded the crawl proceeds rather than aborts.
type RobotsPolicy interface {
	Allowed(url string) bool
}
