package feeds

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/speculum/internal/models"
)

// Sitemap renders a sitemap.org urlset for the crawl. Every entry
// shares the crawl's generated-at lastmod; priority is formatted to
// exactly two decimal places. An empty result set yields a placeholder
// comment instead of an empty urlset body.
func Sitemap(pages []models.PageRecord, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	if len(pages) == 0 {
		b.WriteString("  <!-- no pages discovered -->\n")
	}

	lastmod := generatedAt.UTC().Format(time.RFC3339)
	for _, page := range pages {
		b.WriteString("  <url>\n")
		b.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", escapeXML(page.URL)))
		b.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", lastmod))
		b.WriteString(fmt.Sprintf("    <priority>%.2f</priority>\n", page.Priority))
		b.WriteString("  </url>\n")
	}

	b.WriteString("</urlset>\n")
	return b.String()
}

// escapeXML escapes text for element content
func escapeXML(text string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(text)); err != nil {
		return text
	}
	return b.String()
}
