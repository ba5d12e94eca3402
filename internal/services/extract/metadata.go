package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/speculum/internal/models"
)

// Ordered selector candidates per metadata field; the first selector
// yielding a non-empty value wins.
var (
	authorSelectors = []string{
		`meta[name="author"]`,
		`meta[property="article:author"]`,
		`meta[name="twitter:creator"]`,
	}
	publishedSelectors = []string{
		`meta[property="article:published_time"]`,
		`meta[name="date"]`,
		`meta[itemprop="datePublished"]`,
	}
	updatedSelectors = []string{
		`meta[property="article:modified_time"]`,
		`meta[name="last-modified"]`,
		`meta[itemprop="dateModified"]`,
	}
)

// extractMetadata harvests best-effort document metadata
func (e *Extractor) extractMetadata(doc *goquery.Document) models.PageMetadata {
	meta := models.PageMetadata{
		Author:    firstMeta(doc, authorSelectors),
		Published: firstMeta(doc, publishedSelectors),
		Updated:   firstMeta(doc, updatedSelectors),
	}

	if lang, exists := doc.Find("html").First().Attr("lang"); exists {
		meta.Language = strings.TrimSpace(lang)
	}

	meta.ContentType = strings.TrimSpace(metaContent(doc, `meta[property="og:type"]`))

	meta.PrimaryTopics = extractTopics(doc)
	meta.Entities = extractEntities(doc, meta.Author)

	return meta
}

// firstMeta tries each selector in order and returns the first
// non-empty content value.
func firstMeta(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if value := metaContent(doc, sel); value != "" {
			return value
		}
	}
	return ""
}

// extractTopics merges keyword metas split on comma/semicolon/newline
// with article:tag values, deduplicated case-insensitively.
func extractTopics(doc *goquery.Document) []string {
	var candidates []string

	keywords := metaContent(doc, `meta[name="keywords"]`)
	if keywords != "" {
		candidates = append(candidates, strings.FieldsFunc(keywords, func(r rune) bool {
			return r == ',' || r == ';' || r == '\n'
		})...)
	}

	doc.Find(`meta[property="article:tag"]`).Each(func(_ int, sel *goquery.Selection) {
		if tag, exists := sel.Attr("content"); exists {
			candidates = append(candidates, tag)
		}
	})

	return dedupValues(candidates)
}

// extractEntities collects site-name, publisher, and author candidates
func extractEntities(doc *goquery.Document, author string) []string {
	candidates := []string{
		metaContent(doc, `meta[property="og:site_name"]`),
		metaContent(doc, `meta[property="article:publisher"]`),
		metaContent(doc, `meta[name="publisher"]`),
		author,
	}
	return dedupValues(candidates)
}

// dedupValues trims values and removes case-insensitive duplicates,
// preserving first-seen casing and order.
func dedupValues(values []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, trimmed)
	}

	return result
}
