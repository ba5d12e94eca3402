package models

import "time"

// PageType classifies a crawled page for prioritization
type PageType string

const (
	PageTypeHomepage PageType = "homepage"
	PageTypeArticle  PageType = "article"
	PageTypeProduct  PageType = "product"
	PageTypeDocs     PageType = "docs"
	PageTypeCategory PageType = "category"
)

// pagePriorities is the closed type-to-priority mapping. Adding a page
// type requires an entry here; Priority falls back to the category
// weight for anything unknown.
var pagePriorities = map[PageType]float64{
	PageTypeHomepage: 1.00,
	PageTypeProduct:  0.80,
	PageTypeDocs:     0.80,
	PageTypeArticle:  0.60,
	PageTypeCategory: 0.50,
}

// Priority returns the fixed sitemap priority for the page type
func (t PageType) Priority() float64 {
	if p, ok := pagePriorities[t]; ok {
		return p
	}
	return 0.50
}

// Valid reports whether the page type is one of the known variants
func (t PageType) Valid() bool {
	_, ok := pagePriorities[t]
	return ok
}

// PageRecord is one crawled page in a snapshot. Immutable after
// creation; result order is discovery order, not priority order.
type PageRecord struct {
	URL       string   `json:"url"`        // Canonical URL of the fetched document
	MirrorURL string   `json:"mirror_url"` // AI-mirror counterpart (ai.-prefixed host)
	PageType  PageType `json:"page_type"`
	Priority  float64  `json:"priority"`
}

// QueueItem is one frontier entry awaiting traversal
type QueueItem struct {
	URL   string // Crawl-mode canonical URL
	Depth int    // 0 for the root
}

// CrawlSnapshot is a completed crawl with its rendered feeds
type CrawlSnapshot struct {
	ID          string       `json:"id" badgerhold:"key"` // snap_{uuid}
	Site        string       `json:"site"`                // Normalized root URL
	GeneratedAt time.Time    `json:"generated_at"`
	Pages       []PageRecord `json:"pages"`
	XML         string       `json:"xml"`      // Sitemap XML body
	Markdown    string       `json:"markdown"` // Markdown summary body
	CreatedAt   time.Time    `json:"created_at"`
}

// MarkdownEntry pairs a page URL with its scaffold markdown document
type MarkdownEntry struct {
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
}

// CrawlResult is the JSON response shape for a crawl invocation
type CrawlResult struct {
	Site            string          `json:"site"`
	GeneratedAt     string          `json:"generated_at"` // ISO8601
	Pages           []PageRecord    `json:"pages"`
	XML             string          `json:"xml"`
	Markdown        string          `json:"markdown"`
	MarkdownEntries []MarkdownEntry `json:"markdownEntries"`
}

// CrawlRequest is the caller-facing crawl input
type CrawlRequest struct {
	URL      string `json:"url" validate:"required"`
	MaxDepth int    `json:"maxDepth,omitempty"` // Clamped to 1..4, default 3
	Format   string `json:"format,omitempty" validate:"omitempty,oneof=json xml md"`
}

// ClampDepth returns the effective depth limit for the request
func (r *CrawlRequest) ClampDepth(defaultDepth int) int {
	depth := r.MaxDepth
	if depth == 0 {
		depth = defaultDepth
	}
	if depth < 1 {
		depth = 1
	}
	if depth > 4 {
		depth = 4
	}
	return depth
}
