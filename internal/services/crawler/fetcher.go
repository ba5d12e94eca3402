package crawler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gocolly/colly/v2"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculum/internal/common"
)

// FetchResult is a successfully fetched HTML document
type FetchResult struct {
	HTML       string
	FinalURL   string // URL after redirects
	StatusCode int
}

// contextAwareTransport wraps an http.RoundTripper to support context
// cancellation of in-flight requests.
type contextAwareTransport struct {
	base http.RoundTripper
	ctx  context.Context
}

func (t *contextAwareTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	select {
	case <-t.ctx.Done():
		return nil, t.ctx.Err()
	default:
	}
	req = req.WithContext(t.ctx)
	return t.base.RoundTrip(req)
}

// Fetcher retrieves single HTML documents with size, type, and
// redirect constraints. Robots policy is enforced by the caller, not
// by the collector.
type Fetcher struct {
	collector   *colly.Collector
	maxBodySize int
	logger      arbor.ILogger
}

// NewFetcher creates a fetcher. maxBodySize is the hard byte ceiling;
// responses exceeding it are rejected rather than truncated.
func NewFetcher(config common.CrawlerConfig, maxBodySize int) *Fetcher {
	c := colly.NewCollector(
		colly.UserAgent(config.UserAgent),
		colly.IgnoreRobotsTxt(),
	)
	// One extra byte over the cap so oversize bodies are detectable
	c.MaxBodySize = maxBodySize + 1
	c.SetRequestTimeout(config.RequestTimeout)

	return &Fetcher{
		collector:   c,
		maxBodySize: maxBodySize,
		logger:      common.GetLogger(),
	}
}

// Fetch retrieves one URL for the crawl frontier. Returns nil for any
// rejected page: network failure, non-2xx, non-HTML content type,
// empty body, or oversize body. Rejection is a skip signal, not an
// error.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) *FetchResult {
	result, err := f.fetch(ctx, targetURL)
	if err != nil {
		f.logger.Debug().Str("url", targetURL).Err(err).Msg("Fetch rejected, skipping page")
		return nil
	}
	return result
}

// FetchStrict retrieves one URL for the extraction boundary, where
// failures carry their classification: 502 for unreachable origins and
// upstream errors, 400 for unsupported content.
func (f *Fetcher) FetchStrict(ctx context.Context, targetURL string) (*FetchResult, error) {
	return f.fetch(ctx, targetURL)
}

func (f *Fetcher) fetch(ctx context.Context, targetURL string) (*FetchResult, error) {
	// Clone to avoid handler accumulation across requests
	c := f.collector.Clone()
	c.WithTransport(&contextAwareTransport{base: http.DefaultTransport, ctx: ctx})

	var result *FetchResult
	var fetchErr error

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
		r.Headers.Set("Cache-Control", "no-cache")
	})

	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		if status > 0 {
			fetchErr = common.UpstreamUnavailable(fmt.Sprintf("upstream returned status %d", status), err)
		} else {
			fetchErr = common.UpstreamUnavailable("origin unreachable", err)
		}
	})

	c.OnResponse(func(r *colly.Response) {
		if r.StatusCode < 200 || r.StatusCode >= 300 {
			fetchErr = common.UpstreamUnavailable(fmt.Sprintf("upstream returned status %d", r.StatusCode), nil)
			return
		}

		contentType := ""
		if r.Headers != nil {
			contentType = r.Headers.Get("Content-Type")
		}
		if !strings.Contains(strings.ToLower(contentType), "text/html") {
			fetchErr = common.UnsupportedContent(fmt.Sprintf("unsupported content type %q", contentType), nil)
			return
		}

		if len(r.Body) == 0 {
			fetchErr = common.UnsupportedContent("empty response body", nil)
			return
		}
		if len(r.Body) > f.maxBodySize {
			fetchErr = common.UnsupportedContent(fmt.Sprintf("response body exceeds %d bytes", f.maxBodySize), nil)
			return
		}

		// Malformed byte sequences become replacement characters
		html := strings.ToValidUTF8(string(r.Body), "�")

		result = &FetchResult{
			HTML:       html,
			FinalURL:   r.Request.URL.String(),
			StatusCode: r.StatusCode,
		}
	})

	if err := c.Visit(targetURL); err != nil {
		return nil, common.UpstreamUnavailable("visit failed", err)
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if result == nil {
		return nil, common.UpstreamUnavailable("no response received", nil)
	}
	return result, nil
}
