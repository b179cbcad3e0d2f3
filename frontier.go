package sitetext

import "context"

// Frontier owns the crawl's pending queue and visited set. Admit is the
// single admission point: a URL that is already queued or visited is never
// enqueued again, which bounds the queue and guarantees each URL is
// processed at most once.
type Frontier interface {
	// Seed resets the frontier to a queue holding only u.
	Seed(u string)

	// Next pops the head of the queue in FIFO order, discarding entries
	// that were visited since being queued. The bool is false when the
	// queue is empty.
	Next() (string, bool)

	// MarkVisited records u as visited. The crawl loop calls it exactly
	// once per URL, at the moment of dequeue.
	MarkVisited(u string)

	// Admit appends u to the queue iff it is neither queued nor visited.
	// Returns true if the URL was enqueued.
	Admit(u string) bool

	// Seen reports whether u has been queued or visited.
	Seen(u string) bool

	// Len returns the number of URLs waiting in the queue.
	Len() int
}

// Pacer spaces requests to the target host. Wait gates request starts
// across workers; Pause is the unconditional delay observed after every
// fetch attempt, successful or not.
type Pacer interface {
	Wait(ctx context.Context) error
	Pause(ctx context.Context) error
}
