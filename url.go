package sitetext

import (
	"net/url"
	"path"
	"strings"
)

// Canonicalize reduces a URL to its canonical identity by stripping the
// fragment. Scheme, host, path, and query are preserved verbatim, so two
// URLs that differ only by fragment canonicalize to the same value. The
// operation is idempotent. Malformed input is returned unchanged and left
// for the fetch step to reject.
func Canonicalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	return u.String()
}

// File extensions that never hold crawlable page text.
var excludedExts = map[string]struct{}{
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".css":  {},
	".js":   {},
	".zip":  {},
	".rar":  {},
	".exe":  {},
	".doc":  {},
	".docx": {},
	".xls":  {},
	".xlsx": {},
}

// Path prefixes that lead to site machinery rather than content.
var excludedPrefixes = []string{
	"/wp-admin",
	"/admin",
	"/login",
	"/logout",
	"/search",
	"/wp-content",
	"/wp-includes",
}

// Scope restricts a crawl to content pages of a single site. The zero
// value allows nothing; derive one from the seed URL with NewScope.
type Scope struct {
	// Domain is the exact host of the seed URL, including the port if the
	// seed had one. Subdomains do not match.
	Domain string
}

// NewScope derives the crawl scope from a seed URL.
func NewScope(seedURL string) (Scope, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return Scope{}, Errorf(EINVALID, "invalid seed URL %q: %v", seedURL, err)
	}
	if u.Host == "" {
		return Scope{}, Errorf(EINVALID, "seed URL %q has no host", seedURL)
	}
	return Scope{Domain: u.Host}, nil
}

// Allows reports whether a canonical URL is eligible for the crawl: same
// host as the seed, no excluded file extension, and no excluded path
// prefix. Unparsable URLs are out of scope.
func (s Scope) Allows(rawURL string) bool {
	if s.Domain == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Host != s.Domain {
		return false
	}
	if _, ok := excludedExts[strings.ToLower(path.Ext(u.Path))]; ok {
		return false
	}
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(u.Path, prefix) {
			return false
		}
	}
	return true
}
