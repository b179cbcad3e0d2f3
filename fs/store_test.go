package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sitetext/sitetext"
	"github.com/sitetext/sitetext/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Flat-File Page Storage
// Every saved page becomes one text file in a flat output directory

func TestStore_SaveWritesEnvelopeFile(t *testing.T) {
	t.Parallel()

	// Given a store targeting a directory
	dir := t.TempDir()
	store, err := fs.NewStore(dir)
	require.NoError(t, err)

	// When I save a page
	path, err := store.Save(context.Background(), &sitetext.Page{
		URL:     "https://example.com/docs/api",
		Title:   "Users API",
		Content: "Welcome to the API.",
	})

	// Then no error occurs and the path points into the store directory
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docs-api_Users API.txt"), path)

	// And the file holds the page envelope
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "URL: https://example.com/docs/api\nTitle: Users API\n" +
		strings.Repeat("=", 80) + "\n\nWelcome to the API."
	assert.Equal(t, want, string(got))
}

func TestStore_SaveUsesHomeStemForRootURL(t *testing.T) {
	t.Parallel()

	// Given a store
	dir := t.TempDir()
	store, err := fs.NewStore(dir)
	require.NoError(t, err)

	// When I save the site root
	path, err := store.Save(context.Background(), &sitetext.Page{
		URL:     "https://example.com/",
		Title:   "Example Domain",
		Content: "Hello.",
	})

	// Then the file name starts with the home stem
	require.NoError(t, err)
	assert.Equal(t, "home_Example Domain.txt", filepath.Base(path))
}

func TestStore_CollidingNamesGetNumericSuffixes(t *testing.T) {
	t.Parallel()

	// Given a store with a page already saved
	dir := t.TempDir()
	store, err := fs.NewStore(dir)
	require.NoError(t, err)
	page := func(content string) *sitetext.Page {
		return &sitetext.Page{
			URL:     "https://example.com/docs",
			Title:   "Docs",
			Content: content,
		}
	}
	first, err := store.Save(context.Background(), page("first"))
	require.NoError(t, err)

	// When I save two more pages that map to the same name
	second, err := store.Save(context.Background(), page("second"))
	require.NoError(t, err)
	third, err := store.Save(context.Background(), page("third"))
	require.NoError(t, err)

	// Then each save produced its own file
	assert.Equal(t, "docs_Docs.txt", filepath.Base(first))
	assert.Equal(t, "docs_Docs_1.txt", filepath.Base(second))
	assert.Equal(t, "docs_Docs_2.txt", filepath.Base(third))

	// And no save overwrote another
	got, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(got), "first")
	got, err = os.ReadFile(third)
	require.NoError(t, err)
	assert.Contains(t, string(got), "third")
}

func TestStore_SaveRejectsPageWithoutURL(t *testing.T) {
	t.Parallel()

	// Given a store
	store, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)

	// When I save a page with no URL
	_, err = store.Save(context.Background(), &sitetext.Page{Title: "No URL"})

	// Then validation rejects it
	require.Error(t, err)
	assert.Equal(t, sitetext.EINVALID, sitetext.ErrorCode(err))
}

func TestStore_SaveHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	// Given a store and a canceled context
	dir := t.TempDir()
	store, err := fs.NewStore(dir)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When I save a page
	_, err = store.Save(ctx, &sitetext.Page{
		URL:     "https://example.com/a",
		Title:   "A",
		Content: "body",
	})

	// Then the save fails without writing anything
	require.Error(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewStore_CreatesOutputDirectory(t *testing.T) {
	t.Parallel()

	// Given a directory path that does not exist yet
	dir := filepath.Join(t.TempDir(), "scraped", "content")

	// When I create a store for it
	store, err := fs.NewStore(dir)

	// Then the directory exists
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewStore_FailsWhenDirectoryCannotBeCreated(t *testing.T) {
	t.Parallel()

	// Given a file occupying the target path
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))

	// When I create a store beneath the file
	_, err := fs.NewStore(filepath.Join(blocker, "out"))

	// Then the store reports the failure
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create output directory")
}

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pageURL string
		title   string
		want    string
	}{
		{
			name:    "joins path segments with dashes",
			pageURL: "https://example.com/docs/api/users",
			title:   "Users API",
			want:    "docs-api-users_Users API",
		},
		{
			name:    "root URL becomes home",
			pageURL: "https://example.com/",
			title:   "Example",
			want:    "home_Example",
		},
		{
			name:    "host without path becomes home",
			pageURL: "https://example.com",
			title:   "Example",
			want:    "home_Example",
		},
		{
			name:    "trailing slash adds no segment",
			pageURL: "https://example.com/docs/",
			title:   "Docs",
			want:    "docs_Docs",
		},
		{
			name:    "query string is ignored",
			pageURL: "https://example.com/search/results?q=go",
			title:   "Results",
			want:    "search-results_Results",
		},
		{
			name:    "empty title falls back to page",
			pageURL: "https://example.com/about",
			title:   "",
			want:    "about_page",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.Filename(tt.pageURL, tt.title))
		})
	}
}

func TestSanitizeTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "replaces unsafe characters",
			title: `FAQ: Where/How?`,
			want:  "FAQ_ Where_How_",
		},
		{
			name:  "replaces angle brackets and quotes",
			title: `<b>"Bold"</b>`,
			want:  `_b__Bold___b_`,
		},
		{
			name:  "trims trailing dots and spaces",
			title: "Read more... ",
			want:  "Read more",
		},
		{
			name:  "trims leading dots",
			title: "..hidden",
			want:  "hidden",
		},
		{
			name:  "dots only falls back to page",
			title: "...",
			want:  "page",
		},
		{
			name:  "empty falls back to page",
			title: "",
			want:  "page",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.SanitizeTitle(tt.title))
		})
	}
}

func TestSanitizeTitle_CapsLengthAtRuneBoundary(t *testing.T) {
	t.Parallel()

	// Given a long multi-byte title
	title := strings.Repeat("é", 150)

	// When I sanitize it
	got := fs.SanitizeTitle(title)

	// Then it is capped without splitting a rune
	assert.Equal(t, strings.Repeat("é", 100), got)
}

func TestFormatPage(t *testing.T) {
	t.Parallel()

	got := fs.FormatPage(&sitetext.Page{
		URL:     "https://example.com/intro",
		Title:   "Introduction",
		Content: "Welcome to the site.",
	})

	want := "URL: https://example.com/intro\n" +
		"Title: Introduction\n" +
		strings.Repeat("=", 80) + "\n\n" +
		"Welcome to the site."
	assert.Equal(t, want, got)
}
