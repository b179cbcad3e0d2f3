package mock

import (
	"context"

	"github.com/sitetext/sitetext"
)

var _ sitetext.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of sitetext.Frontier.
type Frontier struct {
	SeedFn        func(u string)
	NextFn        func() (string, bool)
	MarkVisitedFn func(u string)
	AdmitFn       func(u string) bool
	SeenFn        func(u string) bool
	LenFn         func() int
}

func (f *Frontier) Seed(u string) {
	f.SeedFn(u)
}

func (f *Frontier) Next() (string, bool) {
	return f.NextFn()
}

func (f *Frontier) MarkVisited(u string) {
	f.MarkVisitedFn(u)
}

func (f *Frontier) Admit(u string) bool {
	return f.AdmitFn(u)
}

func (f *Frontier) Seen(u string) bool {
	return f.SeenFn(u)
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

var _ sitetext.Pacer = (*Pacer)(nil)

// Pacer is a mock implementation of sitetext.Pacer.
type Pacer struct {
	WaitFn  func(ctx context.Context) error
	PauseFn func(ctx context.Context) error
}

func (p *Pacer) Wait(ctx context.Context) error {
	return p.WaitFn(ctx)
}

func (p *Pacer) Pause(ctx context.Context) error {
	return p.PauseFn(ctx)
}
