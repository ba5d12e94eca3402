package interfaces

import (
	"context"

	"github.com/ternarybob/speculum/internal/models"
)

// CrawlService runs bounded same-host crawls and renders their feeds
type CrawlService interface {
	// Crawl traverses the site breadth-first from the root URL up to
	// maxDepth, and returns the rendered result. Per-page failures are
	// absorbed; only an unparsable root fails the invocation.
	Crawl(ctx context.Context, rootURL string, maxDepth int) (*models.CrawlResult, error)
}

// MirrorService performs single-page extraction for the AI mirror
type MirrorService interface {
	// Extract fetches one page and returns its normalized extraction.
	// Errors carry an HTTP-style classification (400 invalid input or
	// unsupported content, 502 upstream unavailable).
	Extract(ctx context.Context, url string) (*models.ExtractionResult, error)

	// BuildContent derives the structured mirror content from an
	// extraction result. Pure, no I/O.
	BuildContent(result *models.ExtractionResult) (*models.MirrorContent, error)
}

// SchedulerService manages periodic snapshot refreshes
type SchedulerService interface {
	Start() error
	Stop()
}
