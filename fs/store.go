// Package fs provides file-based storage for crawled page text.
package fs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sitetext/sitetext"
)

// maxTitleLength bounds the sanitized title part of a file name.
const maxTitleLength = 100

// headerRule separates the metadata header from the page text.
var headerRule = strings.Repeat("=", 80)

// invalidFilenameChars matches characters that are unsafe in file names.
var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Ensure Store implements sitetext.PageStore at compile time.
var _ sitetext.PageStore = (*Store)(nil)

// Store writes one plain-text file per page into a flat output directory.
// File names derive from the URL path and the page title; name collisions
// get a numeric suffix so no page ever overwrites another.
type Store struct {
	dir string
}

// NewStore creates the output directory if needed and returns a Store
// writing into it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the page envelope to a new file and returns the path of the
// file written.
func (s *Store) Save(ctx context.Context, page *sitetext.Page) (string, error) {
	if err := page.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stem := Filename(page.URL, page.Title)
	content := FormatPage(page)

	// O_EXCL makes the collision probe atomic: the first writer of a name
	// wins and everyone else moves on to the next suffix.
	name := stem + ".txt"
	for counter := 1; ; counter++ {
		path := filepath.Join(s.dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				name = fmt.Sprintf("%s_%d.txt", stem, counter)
				continue
			}
			return "", err
		}

		_, werr := f.WriteString(content)
		cerr := f.Close()
		if werr != nil {
			return "", werr
		}
		if cerr != nil {
			return "", cerr
		}
		return path, nil
	}
}

// Filename derives the file name stem for a page: the URL path segments
// joined with dashes ("home" for the root) plus the sanitized title.
// Example: https://example.com/docs/api + "Users API" → docs-api_Users API
func Filename(pageURL, title string) string {
	var parts []string
	if u, err := url.Parse(pageURL); err == nil {
		for _, part := range strings.Split(u.Path, "/") {
			if part != "" {
				parts = append(parts, part)
			}
		}
	}

	if len(parts) == 0 {
		return "home_" + SanitizeTitle(title)
	}
	return strings.Join(parts, "-") + "_" + SanitizeTitle(title)
}

// SanitizeTitle makes a page title safe for use in a file name: characters
// that are unsafe on common filesystems are replaced, the length is capped,
// and leading and trailing dots and spaces are trimmed. An empty result
// becomes "page".
func SanitizeTitle(title string) string {
	name := invalidFilenameChars.ReplaceAllString(title, "_")
	if runes := []rune(name); len(runes) > maxTitleLength {
		name = string(runes[:maxTitleLength])
	}
	name = strings.Trim(name, ". ")
	if name == "" {
		name = "page"
	}
	return name
}

// FormatPage renders the storage envelope: a URL and title header, a rule
// line, then the page text.
func FormatPage(page *sitetext.Page) string {
	var b strings.Builder
	b.WriteString("URL: ")
	b.WriteString(page.URL)
	b.WriteString("\nTitle: ")
	b.WriteString(page.Title)
	b.WriteString("\n")
	b.WriteString(headerRule)
	b.WriteString("\n\n")
	b.WriteString(page.Content)
	return b.String()
}
