package crawl

import (
	"sync"

	"github.com/sitetext/sitetext"
)

// Compile-time interface verification.
var _ sitetext.Frontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO frontier with exact-set deduplication.
// Exact sets (rather than a probabilistic filter) guarantee that every
// discovered in-scope URL is visited, at the cost of memory proportional
// to the crawl size, which the page budget keeps small.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	queue   []string
	queued  map[string]struct{}
	visited map[string]struct{}
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		queued:  make(map[string]struct{}),
		visited: make(map[string]struct{}),
	}
}

// Seed resets the frontier to a queue holding only u.
func (f *Frontier) Seed(u string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queue = []string{u}
	f.queued = map[string]struct{}{u: {}}
	f.visited = make(map[string]struct{})
}

// Next pops the queue head in FIFO order, discarding entries that were
// visited after being queued. The bool result is false once the queue is
// empty.
func (f *Frontier) Next() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for len(f.queue) > 0 {
		u := f.queue[0]
		f.queue = f.queue[1:]
		delete(f.queued, u)
		if _, ok := f.visited[u]; ok {
			continue
		}
		return u, true
	}
	return "", false
}

// MarkVisited records u as visited so it is never admitted or yielded again.
func (f *Frontier) MarkVisited(u string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.visited[u] = struct{}{}
}

// Admit appends u to the queue iff it is neither queued nor visited.
// Returns true if the URL was enqueued.
func (f *Frontier) Admit(u string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.visited[u]; ok {
		return false
	}
	if _, ok := f.queued[u]; ok {
		return false
	}
	f.queued[u] = struct{}{}
	f.queue = append(f.queue, u)
	return true
}

// Seen reports whether u has been queued or visited.
func (f *Frontier) Seen(u string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.visited[u]; ok {
		return true
	}
	_, ok := f.queued[u]
	return ok
}

// Len returns the number of URLs waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.queue)
}
