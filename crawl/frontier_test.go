package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/sitetext/sitetext/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Admit_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	ok := f.Admit("https://example.com/docs/page1")
	assert.True(t, ok, "first admit should succeed")

	ok = f.Admit("https://example.com/docs/page1")
	assert.False(t, ok, "queued URL should be rejected")
}

func TestFrontier_Admit_rejects_visited_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	f.Seed("https://example.com/")
	u, ok := f.Next()
	assert.True(t, ok)
	f.MarkVisited(u)

	ok = f.Admit("https://example.com/")
	assert.False(t, ok, "visited URL should be rejected")
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_Next_returns_URLs_in_FIFO_order(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	f.Admit("https://example.com/first")
	f.Admit("https://example.com/second")
	f.Admit("https://example.com/third")

	u, ok := f.Next()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/first", u)

	u, ok = f.Next()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/second", u)

	u, ok = f.Next()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/third", u)

	_, ok = f.Next()
	assert.False(t, ok, "next on empty frontier should return false")
}

func TestFrontier_Next_skips_entries_visited_while_queued(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	f.Admit("https://example.com/a")
	f.Admit("https://example.com/b")
	f.MarkVisited("https://example.com/a")

	u, ok := f.Next()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/b", u)
}

func TestFrontier_Seed_resets_state(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	f.Admit("https://example.com/old")
	f.MarkVisited("https://example.com/gone")

	f.Seed("https://example.com/")

	assert.Equal(t, 1, f.Len())
	assert.True(t, f.Seen("https://example.com/"))
	assert.False(t, f.Seen("https://example.com/old"))
	assert.False(t, f.Seen("https://example.com/gone"))

	u, ok := f.Next()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/", u)
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	assert.Equal(t, 0, f.Len(), "new frontier should be empty")

	f.Admit("https://example.com/a")
	assert.Equal(t, 1, f.Len())

	f.Admit("https://example.com/b")
	assert.Equal(t, 2, f.Len())

	f.Next()
	assert.Equal(t, 1, f.Len())

	f.Next()
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_Seen_tracks_queued_and_visited_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	assert.False(t, f.Seen("https://example.com/page"), "unseen URL should return false")

	f.Admit("https://example.com/page")
	assert.True(t, f.Seen("https://example.com/page"), "queued URL should be seen")

	u, _ := f.Next()
	assert.False(t, f.Seen(u), "dequeued but unvisited URL is no longer seen")

	f.MarkVisited(u)
	assert.True(t, f.Seen(u), "visited URL should be seen")
}

func TestFrontier_concurrent_access(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()

	const numGoroutines = 10
	const numOpsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2) // admitters + consumers

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				f.Admit(fmt.Sprintf("https://example.com/%d/%d", id, j))
			}
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				if u, ok := f.Next(); ok {
					f.MarkVisited(u)
				}
				f.Len()
			}
		}()
	}

	wg.Wait()

	// Every admitted URL ends up either still queued or visited, so all
	// of them must register as seen.
	for i := 0; i < numGoroutines; i++ {
		for j := 0; j < numOpsPerGoroutine; j++ {
			url := fmt.Sprintf("https://example.com/%d/%d", i, j)
			assert.True(t, f.Seen(url), "admitted URL %s should be seen", url)
		}
	}
}
