package mirror

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculum/internal/common"
	"github.com/ternarybob/speculum/internal/models"
	"github.com/ternarybob/speculum/internal/services/crawler"
	"github.com/ternarybob/speculum/internal/services/extract"
	"github.com/ternarybob/speculum/internal/services/markdown"
	"github.com/ternarybob/speculum/internal/services/urlnorm"
)

// Service performs single-page extraction for the AI mirror. Shares
// the crawl fetch primitives but surfaces classified errors instead of
// skip signals.
type Service struct {
	fetcher    *crawler.Fetcher
	extractor  *extract.Extractor
	converter  *markdown.Converter
	hostPrefix string
	logger     arbor.ILogger
}

// NewService creates a mirror extraction service
func NewService(config *common.Config) *Service {
	return &Service{
		fetcher:    crawler.NewFetcher(config.Crawler, config.Mirror.MaxBodySize),
		extractor:  extract.New(),
		converter:  markdown.NewConverter(),
		hostPrefix: config.Mirror.HostPrefix,
		logger:     common.GetLogger(),
	}
}

// Extract fetches one page and returns its normalized extraction.
// Fails with 400 for bad URLs and unsupported content, 502 for
// unreachable origins.
func (s *Service) Extract(ctx context.Context, rawURL string) (*models.ExtractionResult, error) {
	target, err := urlnorm.Normalize(rawURL, "", urlnorm.ModeCanonical)
	if err != nil {
		return nil, common.InvalidInput("invalid url", err)
	}

	fetched, err := s.fetcher.FetchStrict(ctx, target)
	if err != nil {
		return nil, err
	}

	extraction, err := s.extractor.Extract(fetched.HTML, fetched.FinalURL)
	if err != nil {
		return nil, common.UnsupportedContent("failed to parse document", err)
	}

	canonical := extraction.Canonical
	if canonical == "" {
		canonical, err = urlnorm.Normalize(fetched.FinalURL, "", urlnorm.ModeCanonical)
		if err != nil {
			canonical = fetched.FinalURL
		}
	}

	body := markdown.Sanitize(s.converter.FromDocument(fetched.HTML))
	if body == "" {
		body = markdown.FallbackContent
	}

	title := extract.Title(fetched.HTML)
	if title == "" {
		title = "Untitled"
	}

	metadata := extraction.Metadata
	metadata.Canonical = canonical

	s.logger.Info().
		Str("url", target).
		Str("canonical", canonical).
		Int("markdown_size", len(body)).
		Msg("Page extracted")

	return &models.ExtractionResult{
		Title:     title,
		URL:       fetched.FinalURL,
		Canonical: canonical,
		Markdown:  body,
		Metadata:  metadata,
	}, nil
}

// MirrorURL derives the ai.-prefixed counterpart of a canonical URL
func (s *Service) MirrorURL(canonical string) string {
	return urlnorm.Mirror(canonical, s.hostPrefix)
}
