package goquery_test

import (
	"testing"

	"github.com/sitetext/sitetext"
	"github.com/sitetext/sitetext/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractor(t *testing.T) *goquery.Extractor {
	t.Helper()
	scope, err := sitetext.NewScope("https://example.com/")
	require.NoError(t, err)
	return goquery.NewExtractor(scope)
}

func TestExtractor_Extract_Title(t *testing.T) {
	t.Parallel()

	t.Run("uses the document title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>About Us</title></head><body><h1>Team</h1></body></html>`

		page, err := newExtractor(t).Extract(html, "https://example.com/about")

		require.NoError(t, err)
		assert.Equal(t, "About Us", page.Title)
	})

	t.Run("falls back to the first heading", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1>  Team  </h1><h1>Second</h1></body></html>`

		page, err := newExtractor(t).Extract(html, "https://example.com/about")

		require.NoError(t, err)
		assert.Equal(t, "Team", page.Title)
	})

	t.Run("falls back to a placeholder", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>no title anywhere</p></body></html>`

		page, err := newExtractor(t).Extract(html, "https://example.com/about")

		require.NoError(t, err)
		assert.Equal(t, "Untitled Page", page.Title)
	})

	t.Run("treats whitespace-only title as missing", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>   </title></head><body><h1>Team</h1></body></html>`

		page, err := newExtractor(t).Extract(html, "https://example.com/about")

		require.NoError(t, err)
		assert.Equal(t, "Team", page.Title)
	})
}

func TestExtractor_Extract_Content(t *testing.T) {
	t.Parallel()

	t.Run("removes boilerplate subtrees", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<header>Site Header</header>
			<nav>Home | About</nav>
			<p>Real content here.</p>
			<script>var x = 1;</script>
			<style>.a { color: red }</style>
			<footer>Copyright</footer>
		</body></html>`

		page, err := newExtractor(t).Extract(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "Real content here.", page.Content)
	})

	t.Run("collapses whitespace runs and line breaks", func(t *testing.T) {
		t.Parallel()

		html := "<html><body><p>first\n\n   paragraph</p>\n<p>second\tparagraph</p></body></html>"

		page, err := newExtractor(t).Extract(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "first paragraph second paragraph", page.Content)
	})

	t.Run("keeps text of nested non-boilerplate elements", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><article><h2>Post</h2><p>Body <em>text</em>.</p></article></main></body></html>`

		page, err := newExtractor(t).Extract(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, "Post Body text.", page.Content)
	})

	t.Run("tolerates malformed HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>unclosed <div>mixed</p></body>`

		page, err := newExtractor(t).Extract(html, "https://example.com/")

		require.NoError(t, err)
		assert.Contains(t, page.Content, "unclosed")
		assert.Contains(t, page.Content, "mixed")
	})
}

func TestExtractor_Extract_Links(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links against the page URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/about">About</a>
			<a href="team">Team</a>
			<a href="../pricing">Pricing</a>
		</body></html>`

		page, err := newExtractor(t).Extract(html, "https://example.com/docs/intro")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/about",
			"https://example.com/docs/team",
			"https://example.com/pricing",
		}, page.Links)
	})

	t.Run("strips fragments so section links collapse to one URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/page#intro">Intro</a>
			<a href="/page#usage">Usage</a>
			<a href="/page">Plain</a>
		</body></html>`

		page, err := newExtractor(t).Extract(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/page"}, page.Links)
	})

	t.Run("filters links outside the crawl scope", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="https://other.com/page">External</a>
			<a href="https://blog.example.com/post">Subdomain</a>
			<a href="/report.pdf">PDF</a>
			<a href="/wp-admin/settings">Admin</a>
			<a href="/ok">OK</a>
		</body></html>`

		page, err := newExtractor(t).Extract(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/ok"}, page.Links)
	})

	t.Run("skips non-HTTP schemes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="javascript:void(0)">JS</a>
			<a href="mailto:hi@example.com">Mail</a>
			<a href="tel:+1555">Call</a>
			<a href="/contact">Contact</a>
		</body></html>`

		page, err := newExtractor(t).Extract(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/contact"}, page.Links)
	})

	t.Run("discovers links inside boilerplate subtrees", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<nav><a href="/docs">Docs</a></nav>
			<p>Body</p>
			<footer><a href="/imprint">Imprint</a></footer>
		</body></html>`

		page, err := newExtractor(t).Extract(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/docs",
			"https://example.com/imprint",
		}, page.Links)
		assert.Equal(t, "Body", page.Content, "boilerplate text stays out of the content")
	})

	t.Run("deduplicates links within the page preserving order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<a href="/b">B</a>
			<a href="/a">A</a>
			<a href="/b">B again</a>
		</body></html>`

		page, err := newExtractor(t).Extract(html, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/b",
			"https://example.com/a",
		}, page.Links)
	})

	t.Run("returns no links for a page without anchors", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>nothing to follow</p></body></html>`

		page, err := newExtractor(t).Extract(html, "https://example.com/")

		require.NoError(t, err)
		assert.Empty(t, page.Links)
	})
}

func TestExtractor_Extract_PageURL(t *testing.T) {
	t.Parallel()

	page, err := newExtractor(t).Extract("<html><body>x</body></html>", "https://example.com/p")

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/p", page.URL)
}
