package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Title resolves the document title: og:title, then <title>, then the
// first <h1>. Empty when none exist.
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	if title := metaContent(doc, `meta[property="og:title"]`); title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
