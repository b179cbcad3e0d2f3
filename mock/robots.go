package mock

import "github.com/sitetext/sitetext"

var _ sitetext.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy is a mock implementation of sitetext.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(url string) bool
}

func (p *RobotsPolicy) Allowed(url string) bool {
	return p.AllowedFn(url)
}
