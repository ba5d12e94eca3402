package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/speculum/internal/models"
)

const articleHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Fallback Title</title>
<link rel="canonical" href="/posts/hello#frag">
<meta property="og:type" content="article">
<meta property="og:title" content="Hello World">
<meta property="og:site_name" content="Example Blog">
<meta name="author" content="Jane Writer">
<meta property="article:published_time" content="2026-01-15T10:00:00Z">
<meta property="article:modified_time" content="2026-02-01T08:30:00Z">
<meta name="keywords" content="go, crawling; markdown">
<meta property="article:tag" content="Go">
<meta property="article:tag" content="Extraction">
</head>
<body>
<a href="/about">About</a>
<a href="https://example.com/docs/">Docs</a>
<a href="#top">Top</a>
<a href="mailto:hi@example.com">Mail</a>
<a href="tel:+123">Call</a>
<a href="JavaScript:void(0)">Noop</a>
<a href="">Empty</a>
</body>
</html>`

func TestExtractArticle(t *testing.T) {
	extractor := New()
	result, err := extractor.Extract(articleHTML, "https://example.com/posts/hello")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/posts/hello", result.Canonical, "canonical resolved and fragment stripped")
	assert.Equal(t, []string{"/about", "https://example.com/docs/"}, result.Links)
	assert.Equal(t, models.PageTypeArticle, result.PageType)

	meta := result.Metadata
	assert.Equal(t, "Jane Writer", meta.Author)
	assert.Equal(t, "2026-01-15T10:00:00Z", meta.Published)
	assert.Equal(t, "2026-02-01T08:30:00Z", meta.Updated)
	assert.Equal(t, "en", meta.Language)
	assert.Equal(t, "article", meta.ContentType)
	// Keywords split, merged with article:tag values, case-insensitive dedup keeps first casing
	assert.Equal(t, []string{"go", "crawling", "markdown", "Extraction"}, meta.PrimaryTopics)
	assert.Equal(t, []string{"Example Blog", "Jane Writer"}, meta.Entities)
}

func TestClassifyPageOrder(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		html     string
		expected models.PageType
	}{
		{"root is homepage", "/", "<html></html>", models.PageTypeHomepage},
		{"og product wins over docs path", "/docs/widget", `<html><head><meta property="og:type" content="product"></head></html>`, models.PageTypeProduct},
		{"pricing path", "/pricing", "<html></html>", models.PageTypeProduct},
		{"published time implies article", "/anything", `<html><head><meta property="article:published_time" content="2026-01-01"></head></html>`, models.PageTypeArticle},
		{"blog path", "/blog/post-1", "<html></html>", models.PageTypeArticle},
		{"news path", "/news/today", "<html></html>", models.PageTypeArticle},
		{"docs path", "/documentation/api", "<html></html>", models.PageTypeDocs},
		{"guide path", "/guide/setup", "<html></html>", models.PageTypeDocs},
		{"collections path", "/collections/shoes", "<html></html>", models.PageTypeCategory},
		{"default", "/random-page", "<html></html>", models.PageTypeCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ClassifyPage(doc, tt.path))
		})
	}
}

func TestPagePriorities(t *testing.T) {
	assert.Equal(t, 1.00, models.PageTypeHomepage.Priority())
	assert.Equal(t, 0.80, models.PageTypeProduct.Priority())
	assert.Equal(t, 0.80, models.PageTypeDocs.Priority())
	assert.Equal(t, 0.60, models.PageTypeArticle.Priority())
	assert.Equal(t, 0.50, models.PageTypeCategory.Priority())
	assert.Equal(t, 0.50, models.PageType("unknown").Priority())
}

func TestExtractMissingCanonical(t *testing.T) {
	extractor := New()
	result, err := extractor.Extract("<html><body><p>hi</p></body></html>", "https://example.com/page")
	require.NoError(t, err)
	assert.Empty(t, result.Canonical)
}

func TestContentTypeFallback(t *testing.T) {
	extractor := New()

	// Path-only article classification carries no structural marker,
	// so the content type stays empty.
	pathOnly, err := extractor.Extract("<html><body><p>post</p></body></html>", "https://example.com/blog/post")
	require.NoError(t, err)
	assert.Equal(t, models.PageTypeArticle, pathOnly.PageType)
	assert.Empty(t, pathOnly.Metadata.ContentType)

	published, err := extractor.Extract(
		`<html><head><meta property="article:published_time" content="2026-01-01"></head><body><p>post</p></body></html>`,
		"https://example.com/blog/post")
	require.NoError(t, err)
	assert.Equal(t, "article", published.Metadata.ContentType)

	ogArticle, err := extractor.Extract(
		`<html><head><meta property="og:type" content="article"></head><body><p>post</p></body></html>`,
		"https://example.com/anywhere")
	require.NoError(t, err)
	assert.Equal(t, "article", ogArticle.Metadata.ContentType)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Hello World", Title(articleHTML), "og:title preferred")
	assert.Equal(t, "Plain Title", Title("<html><head><title>Plain Title</title></head></html>"))
	assert.Equal(t, "Heading", Title("<html><body><h1> Heading </h1></body></html>"))
	assert.Empty(t, Title("<html><body></body></html>"))
}
