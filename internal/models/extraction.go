package models

import "time"

// PageMetadata is the best-effort metadata harvested from a document.
// Every field is optional; topics and entities preserve first-seen
// casing and order after case-insensitive dedup.
type PageMetadata struct {
	Canonical     string   `json:"canonical,omitempty"`
	Author        string   `json:"author,omitempty"`
	Published     string   `json:"published,omitempty"`
	Updated       string   `json:"updated,omitempty"`
	Language      string   `json:"language,omitempty"`
	ContentType   string   `json:"content_type,omitempty"`
	PrimaryTopics []string `json:"primary_topics"`
	Entities      []string `json:"entities"`
}

// ExtractionResult is a single-page extraction used by the mirror
// endpoints, distinct from crawl PageRecords but sharing the same
// extraction primitives.
type ExtractionResult struct {
	Title     string       `json:"title"`
	URL       string       `json:"url"`       // Final URL after redirects
	Canonical string       `json:"canonical"` // rel=canonical target, else final URL
	Markdown  string       `json:"markdown"`  // Sanitized markdown body
	Metadata  PageMetadata `json:"metadata"`
}

// LinkExtraction is the per-document output of the link/metadata extractor
type LinkExtraction struct {
	Canonical string       // Absent (empty) when missing or unparsable
	Links     []string     // Raw hrefs, filtered of fragments and non-web schemes
	PageType  PageType
	Metadata  PageMetadata
}

// MirrorDocument is a persisted single-page mirror extraction
type MirrorDocument struct {
	ID          string       `json:"id" badgerhold:"key"` // doc_{uuid}
	URL         string       `json:"url" badgerhold:"index"`
	Canonical   string       `json:"canonical"`
	Title       string       `json:"title"`
	Markdown    string       `json:"markdown"`
	Metadata    PageMetadata `json:"metadata"`
	FetchedAt   time.Time    `json:"fetched_at"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// StructuredSection is one "## " block of a mirror document reduced to facts
type StructuredSection struct {
	Section string   `json:"section"`
	Facts   []string `json:"facts"` // Sentences, capped at 5 per section
}

// MirrorContent is the AI-mirror JSON content shape
type MirrorContent struct {
	URL               string              `json:"url"`
	MirrorURL         string              `json:"mirror_url"` // ai.-prefixed canonical host
	Title             string              `json:"title"`
	Summary           string              `json:"summary"` // First sentences of the stripped body
	StructuredContent []StructuredSection `json:"structured_content"`
	KeyTopics         []string            `json:"key_topics"` // Capped at 10
	Metadata          PageMetadata        `json:"metadata"`
}
