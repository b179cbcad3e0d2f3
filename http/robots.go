package http

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/sitetext/sitetext"
	"github.com/temoto/robotstxt"
)

// maxRobotsSize caps how much of a robots.txt file is read.
const maxRobotsSize = 2 << 20

// Ensure Robots implements sitetext.RobotsPolicy at compile time.
var _ sitetext.RobotsPolicy = (*Robots)(nil)

// Robots holds a site's parsed robots.txt rules for one user agent. The
// rules are loaded once before a crawl starts and are read-only afterwards.
type Robots struct {
	rules *robotstxt.RobotsData
	agent string
}

// LoadRobots fetches and parses the robots.txt of the site hosting
// seedURL. Every failure mode, whether an unreachable file, an error
// status, or unparsable rules, is returned to the caller, which owns the
// fail-open decision.
func LoadRobots(ctx context.Context, client *http.Client, seedURL, userAgent string) (*Robots, error) {
	if client == nil {
		client = http.DefaultClient
	}

	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "invalid seed URL %q: %v", seedURL, err)
	}
	robotsURL := &url.URL{Scheme: seed.Scheme, Host: seed.Host, Path: "/robots.txt"}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "build request for %s: %v", robotsURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EUNAVAILABLE, "fetch %s: %v", robotsURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, sitetext.Errorf(sitetext.EUNAVAILABLE, "fetch %s: HTTP %d", robotsURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EUNAVAILABLE, "read %s: %v", robotsURL, err)
	}

	rules, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "parse %s: %v", robotsURL, err)
	}

	return &Robots{rules: rules, agent: userAgent}, nil
}

// Allowed reports whether the URL's path may be fetched under the loaded
// rules. Rules are matched for the crawler's user agent, falling back to
// the wildcard group.
func (r *Robots) Allowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	group := r.rules.FindGroup(r.agent)
	if group == nil {
		group = r.rules.FindGroup("*")
	}
	if group == nil {
		return true
	}
	return group.Test(u.Path)
}
