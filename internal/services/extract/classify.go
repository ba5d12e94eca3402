package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/speculum/internal/models"
)

// classifyRule is one entry in the ordered classification table. The
// first matching rule wins.
type classifyRule struct {
	pageType models.PageType
	matches  func(sig pageSignals) bool
}

// pageSignals are the inputs page classification operates on
type pageSignals struct {
	path          string // Lowercased URL path
	ogType        string // Lowercased og:type meta value
	hasPublished  bool   // article:published_time meta present
}

// classifyRules is the fixed classification policy, evaluated in order
var classifyRules = []classifyRule{
	{models.PageTypeHomepage, func(s pageSignals) bool {
		return s.path == "/" || s.path == ""
	}},
	{models.PageTypeProduct, func(s pageSignals) bool {
		return s.ogType == "product" ||
			strings.Contains(s.path, "/product") ||
			strings.Contains(s.path, "/pricing")
	}},
	{models.PageTypeArticle, func(s pageSignals) bool {
		return s.ogType == "article" || s.hasPublished
	}},
	{models.PageTypeArticle, func(s pageSignals) bool {
		return strings.Contains(s.path, "/blog") || strings.Contains(s.path, "/news")
	}},
	{models.PageTypeDocs, func(s pageSignals) bool {
		return strings.Contains(s.path, "/docs") ||
			strings.Contains(s.path, "/documentation") ||
			strings.Contains(s.path, "/guide")
	}},
	{models.PageTypeCategory, func(s pageSignals) bool {
		return strings.Contains(s.path, "/category") ||
			strings.Contains(s.path, "/collections") ||
			strings.Contains(s.path, "/topics")
	}},
}

// ClassifyPage determines the page type from the document and its URL
// path. Unmatched pages default to category.
func ClassifyPage(doc *goquery.Document, path string) models.PageType {
	sig := pageSignals{
		path:   strings.ToLower(path),
		ogType: strings.ToLower(strings.TrimSpace(metaContent(doc, `meta[property="og:type"]`))),
	}
	sig.hasPublished = metaContent(doc, `meta[property="article:published_time"]`) != ""

	for _, rule := range classifyRules {
		if rule.matches(sig) {
			return rule.pageType
		}
	}
	return models.PageTypeCategory
}

// articleSignals reports whether the document carries structural
// article markers (og:type=article or article:published_time), as
// opposed to only path-based article classification.
func articleSignals(doc *goquery.Document) bool {
	ogType := strings.ToLower(strings.TrimSpace(metaContent(doc, `meta[property="og:type"]`)))
	return ogType == "article" || metaContent(doc, `meta[property="article:published_time"]`) != ""
}

// metaContent returns the content attribute of the first matching meta
// element, or "".
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
