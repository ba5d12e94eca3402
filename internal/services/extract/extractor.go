package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/speculum/internal/models"
	"github.com/ternarybob/speculum/internal/services/urlnorm"
)

// Extractor parses fetched documents into links, canonical URLs, page
// classification, and metadata.
type Extractor struct{}

// New creates a link/metadata extractor
func New() *Extractor {
	return &Extractor{}
}

// Extract parses the document HTML and harvests canonical, links, page
// type, and metadata. pageURL is the final fetched URL used for
// relative resolution and path classification.
func (e *Extractor) Extract(html string, pageURL string) (*models.LinkExtraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page url: %w", err)
	}

	result := &models.LinkExtraction{
		Canonical: e.extractCanonical(doc, pageURL),
		Links:     e.extractLinks(doc),
		Metadata:  e.extractMetadata(doc),
	}
	result.PageType = ClassifyPage(doc, parsed.Path)
	// The fallback keys on structural article markers, not the final
	// page type: a /blog path alone does not imply article content.
	if result.Metadata.ContentType == "" && articleSignals(doc) {
		result.Metadata.ContentType = "article"
	}

	return result, nil
}

// extractCanonical resolves <link rel="canonical"> against the page
// URL with the fragment stripped. Empty when missing or unparsable.
func (e *Extractor) extractCanonical(doc *goquery.Document, pageURL string) string {
	href, exists := doc.Find(`link[rel="canonical"]`).First().Attr("href")
	if !exists || strings.TrimSpace(href) == "" {
		return ""
	}

	canonical, err := urlnorm.Normalize(href, pageURL, urlnorm.ModeCanonical)
	if err != nil {
		return ""
	}
	return canonical
}

// extractLinks collects every non-empty <a href> that is not a bare
// fragment or a non-web scheme.
func (e *Extractor) extractLinks(doc *goquery.Document) []string {
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		lower := strings.ToLower(href)
		if strings.HasPrefix(lower, "mailto:") ||
			strings.HasPrefix(lower, "tel:") ||
			strings.HasPrefix(lower, "javascript:") {
			return
		}

		links = append(links, href)
	})

	return links
}
