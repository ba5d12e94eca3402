package crawler

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/speculum/internal/common"
	"github.com/ternarybob/speculum/internal/models"
	"github.com/ternarybob/speculum/internal/services/extract"
	"github.com/ternarybob/speculum/internal/services/feeds"
	"github.com/ternarybob/speculum/internal/services/robots"
	"github.com/ternarybob/speculum/internal/services/urlnorm"
)

// Service runs bounded same-host breadth-first crawls. One crawl at a
// time owns its frontier; concurrent invocations share nothing.
type Service struct {
	config       common.CrawlerConfig
	mirrorPrefix string
	fetcher      *Fetcher
	robots       *robots.Service
	extractor    *extract.Extractor
	limiter      *rate.Limiter
	logger       arbor.ILogger
}

// NewService creates a crawl service from configuration
func NewService(config *common.Config) *Service {
	delay := config.Crawler.RequestDelay
	if delay <= 0 {
		delay = time.Millisecond
	}

	return &Service{
		config:       config.Crawler,
		mirrorPrefix: config.Mirror.HostPrefix,
		fetcher:      NewFetcher(config.Crawler, config.Crawler.MaxBodySize),
		robots:       robots.NewService(config.Crawler.UserAgent, config.Crawler.RequestTimeout),
		extractor:    extract.New(),
		limiter:      rate.NewLimiter(rate.Every(delay), 1),
		logger:       common.GetLogger(),
	}
}

// Crawl traverses the site from rootURL up to maxDepth and renders the
// result feeds. Per-page failures reduce the result set; only an
// unparsable root fails the invocation. An empty page list is a valid
// outcome.
func (s *Service) Crawl(ctx context.Context, rootURL string, maxDepth int) (*models.CrawlResult, error) {
	root, err := urlnorm.Normalize(rootURL, "", urlnorm.ModeCrawl)
	if err != nil {
		return nil, fmt.Errorf("invalid root url: %w", err)
	}
	rootParsed, err := url.Parse(root)
	if err != nil {
		return nil, fmt.Errorf("invalid root url: %w", err)
	}
	rootHost := urlnorm.HostKey(rootParsed.Hostname())
	origin := rootParsed.Scheme + "://" + rootParsed.Host

	if maxDepth < 1 {
		maxDepth = 1
	}

	startTime := time.Now()
	generatedAt := startTime.UTC()

	checker := s.robots.Load(ctx, origin)

	fr := newFrontier()
	fr.enqueue(root, 0)

	pages := []models.PageRecord{}

	s.logger.Info().
		Str("root", root).
		Int("max_depth", maxDepth).
		Int("max_pages", s.config.MaxPages).
		Msg("Starting crawl")

	for len(pages) < s.config.MaxPages {
		// Cancellation interrupts between dequeues, never mid-fetch
		if ctx.Err() != nil {
			s.logger.Warn().Str("root", root).Msg("Crawl cancelled")
			break
		}

		item, ok := fr.dequeue()
		if !ok {
			break
		}

		if fr.isVisited(item.URL) {
			continue
		}

		itemParsed, err := url.Parse(item.URL)
		if err != nil {
			continue
		}
		if urlnorm.HostKey(itemParsed.Hostname()) != rootHost {
			continue
		}
		if isBlockedPath(itemParsed.Path) {
			continue
		}
		if !checker.Allows(itemParsed.Path) {
			continue
		}

		fr.markVisited(item.URL)

		if err := s.limiter.Wait(ctx); err != nil {
			break
		}

		fetched := s.fetcher.Fetch(ctx, item.URL)
		if fetched == nil {
			continue
		}

		extraction, err := s.extractor.Extract(fetched.HTML, fetched.FinalURL)
		if err != nil {
			s.logger.Debug().Str("url", item.URL).Err(err).Msg("Extraction failed, skipping page")
			continue
		}

		canonical := extraction.Canonical
		if canonical == "" {
			canonical, err = urlnorm.Normalize(fetched.FinalURL, "", urlnorm.ModeCrawl)
			if err != nil {
				continue
			}
		}

		canonicalParsed, err := url.Parse(canonical)
		if err != nil {
			continue
		}
		if urlnorm.HostKey(canonicalParsed.Hostname()) != rootHost {
			continue
		}
		if isBlockedPath(canonicalParsed.Path) || !checker.Allows(canonicalParsed.Path) {
			continue
		}

		if !fr.isRecorded(canonical) {
			fr.markRecorded(canonical)
			pages = append(pages, models.PageRecord{
				URL:       canonical,
				MirrorURL: urlnorm.Mirror(canonical, s.mirrorPrefix),
				PageType:  extraction.PageType,
				Priority:  extraction.PageType.Priority(),
			})
			if len(pages) >= s.config.MaxPages {
				break
			}
		}

		if item.Depth < maxDepth {
			s.discoverLinks(fr, checker, extraction.Links, fetched.FinalURL, rootHost, item.Depth+1)
		}
	}

	s.logger.Info().
		Str("root", root).
		Int("pages", len(pages)).
		Dur("duration", time.Since(startTime)).
		Msg("Crawl complete")

	return &models.CrawlResult{
		Site:            root,
		GeneratedAt:     generatedAt.Format(time.RFC3339),
		Pages:           pages,
		XML:             feeds.Sitemap(pages, generatedAt),
		Markdown:        feeds.Summary(root, pages, generatedAt),
		MarkdownEntries: feeds.Entries(pages, generatedAt),
	}, nil
}

// discoverLinks filters and enqueues candidate links at the next
// depth. Malformed candidates are dropped, never surfaced.
func (s *Service) discoverLinks(fr *frontier, checker *robots.Checker, links []string, base string, rootHost string, depth int) {
	for _, link := range links {
		candidate, err := urlnorm.Normalize(link, base, urlnorm.ModeCrawl)
		if err != nil {
			continue
		}

		parsed, err := url.Parse(candidate)
		if err != nil {
			continue
		}
		if urlnorm.HostKey(parsed.Hostname()) != rootHost {
			continue
		}
		if isBlockedPath(parsed.Path) {
			continue
		}
		if !checker.Allows(parsed.Path) {
			continue
		}
		if fr.isVisited(candidate) {
			continue
		}

		fr.enqueue(candidate, depth)
	}
}
