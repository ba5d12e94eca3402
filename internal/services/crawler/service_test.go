package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/speculum/internal/common"
	"github.com/ternarybob/speculum/internal/models"
)

// testSite serves a small site and records every fetched path
type testSite struct {
	mu      sync.Mutex
	fetches []string
	pages   map[string]string
	robots  string
}

func (s *testSite) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.fetches = append(s.fetches, r.URL.Path)
		s.mu.Unlock()

		if r.URL.Path == "/robots.txt" {
			if s.robots == "" {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte(s.robots))
			return
		}

		body, ok := s.pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}
}

func (s *testSite) fetchCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, p := range s.fetches {
		if p == path {
			count++
		}
	}
	return count
}

func testConfig() *common.Config {
	config := common.NewDefaultConfig()
	config.Crawler.RequestDelay = time.Millisecond
	config.Crawler.RequestTimeout = 5 * time.Second
	return config
}

func TestCrawlSingleHomepage(t *testing.T) {
	site := &testSite{pages: map[string]string{
		"/": "<html><body><h1>Welcome</h1></body></html>",
	}}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	svc := NewService(testConfig())
	result, err := svc.Crawl(context.Background(), server.URL, 3)
	require.NoError(t, err)

	require.Len(t, result.Pages, 1)
	assert.Equal(t, models.PageTypeHomepage, result.Pages[0].PageType)
	assert.Equal(t, 1.00, result.Pages[0].Priority)
	assert.Contains(t, result.XML, "<priority>1.00</priority>")
	assert.NotEmpty(t, result.Markdown)
	assert.Len(t, result.MarkdownEntries, 1)
}

func TestCrawlFollowsSameHostLinks(t *testing.T) {
	site := &testSite{pages: map[string]string{
		"/":      `<html><body><a href="/about">About</a><a href="/blog/post">Post</a><a href="https://elsewhere.com/x">Ext</a></body></html>`,
		"/about": "<html><body><p>about us</p></body></html>",
		"/blog/post": "<html><body><p>a post</p></body></html>",
	}}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	svc := NewService(testConfig())
	result, err := svc.Crawl(context.Background(), server.URL, 3)
	require.NoError(t, err)

	require.Len(t, result.Pages, 3)

	types := map[string]models.PageType{}
	for _, page := range result.Pages {
		types[page.URL] = page.PageType
	}
	assert.Equal(t, models.PageTypeArticle, types[server.URL+"/blog/post"])
}

func TestCrawlNoDuplicateFetch(t *testing.T) {
	site := &testSite{pages: map[string]string{
		"/":  `<html><body><a href="/a">A</a><a href="/a">A again</a><a href="/a/">A slash</a></body></html>`,
		"/a": `<html><body><a href="/">home</a></body></html>`,
	}}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	svc := NewService(testConfig())
	_, err := svc.Crawl(context.Background(), server.URL, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, site.fetchCount("/"))
	assert.Equal(t, 1, site.fetchCount("/a"))
}

func TestCrawlOneRecordPerCanonical(t *testing.T) {
	canonicalPage := func(server string) string {
		return fmt.Sprintf(`<html><head><link rel="canonical" href="%s/real"></head><body><p>same page</p></body></html>`, server)
	}

	site := &testSite{pages: map[string]string{}}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	site.pages["/"] = `<html><body><a href="/v1">v1</a><a href="/v2">v2</a></body></html>`
	site.pages["/v1"] = canonicalPage(server.URL)
	site.pages["/v2"] = canonicalPage(server.URL)

	svc := NewService(testConfig())
	result, err := svc.Crawl(context.Background(), server.URL, 3)
	require.NoError(t, err)

	canonicalCount := 0
	for _, page := range result.Pages {
		if page.URL == server.URL+"/real" {
			canonicalCount++
		}
	}
	assert.Equal(t, 1, canonicalCount, "two URLs sharing a canonical yield one record")
	assert.Len(t, result.Pages, 2)
}

func TestCrawlBlockedPathsNeverFetched(t *testing.T) {
	site := &testSite{pages: map[string]string{
		"/":      `<html><body><a href="/login">Login</a><a href="/admin/panel">Admin</a><a href="/cart">Cart</a><a href="/style.css">CSS</a><a href="/ok">OK</a></body></html>`,
		"/login": "<html><body>login</body></html>",
		"/ok":    "<html><body><p>fine</p></body></html>",
	}}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	svc := NewService(testConfig())
	result, err := svc.Crawl(context.Background(), server.URL, 3)
	require.NoError(t, err)

	assert.Equal(t, 0, site.fetchCount("/login"))
	assert.Equal(t, 0, site.fetchCount("/admin/panel"))
	assert.Equal(t, 0, site.fetchCount("/cart"))
	assert.Equal(t, 0, site.fetchCount("/style.css"))
	assert.Equal(t, 1, site.fetchCount("/ok"))
	assert.Len(t, result.Pages, 2)
}

func TestCrawlRespectsRobots(t *testing.T) {
	site := &testSite{
		robots: "User-agent: *\nDisallow: /private\n",
		pages: map[string]string{
			"/":             `<html><body><a href="/private/page">P</a><a href="/public">Pub</a></body></html>`,
			"/private/page": "<html><body>secret</body></html>",
			"/public":       "<html><body><p>open</p></body></html>",
		},
	}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	svc := NewService(testConfig())
	result, err := svc.Crawl(context.Background(), server.URL, 3)
	require.NoError(t, err)

	// The policy must be loaded from the root's own scheme and host;
	// a failed fetch would fall back to allow-all and mask the rules.
	assert.Equal(t, 1, site.fetchCount("/robots.txt"))
	assert.Equal(t, 0, site.fetchCount("/private/page"))
	assert.Equal(t, 1, site.fetchCount("/public"))
	assert.Len(t, result.Pages, 2)
}

func TestCrawlDepthBound(t *testing.T) {
	site := &testSite{pages: map[string]string{
		"/":   `<html><body><a href="/d1">1</a></body></html>`,
		"/d1": `<html><body><a href="/d2">2</a></body></html>`,
		"/d2": `<html><body><a href="/d3">3</a></body></html>`,
		"/d3": "<html><body>deep</body></html>",
	}}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	svc := NewService(testConfig())
	result, err := svc.Crawl(context.Background(), server.URL, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, site.fetchCount("/d1"))
	assert.Equal(t, 1, site.fetchCount("/d2"))
	assert.Equal(t, 0, site.fetchCount("/d3"), "links beyond the depth limit are not enqueued")
	assert.Len(t, result.Pages, 3)
}

func TestCrawlPageBudget(t *testing.T) {
	site := &testSite{pages: map[string]string{}}
	var links string
	for i := 0; i < 10; i++ {
		path := fmt.Sprintf("/p%d", i)
		links += fmt.Sprintf(`<a href="%s">p</a>`, path)
		site.pages[path] = "<html><body><p>page</p></body></html>"
	}
	site.pages["/"] = "<html><body>" + links + "</body></html>"

	server := httptest.NewServer(site.handler())
	defer server.Close()

	config := testConfig()
	config.Crawler.MaxPages = 4

	svc := NewService(config)
	result, err := svc.Crawl(context.Background(), server.URL, 3)
	require.NoError(t, err)

	assert.Len(t, result.Pages, 4, "page budget is a hard cap")
}

func TestCrawlSkipsFailingPages(t *testing.T) {
	site := &testSite{pages: map[string]string{
		"/":   `<html><body><a href="/missing">M</a><a href="/ok">OK</a></body></html>`,
		"/ok": "<html><body><p>fine</p></body></html>",
	}}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	svc := NewService(testConfig())
	result, err := svc.Crawl(context.Background(), server.URL, 3)
	require.NoError(t, err, "per-page failures never fail the crawl")
	assert.Len(t, result.Pages, 2)
}

func TestCrawlEmptyResultIsArray(t *testing.T) {
	// Root page does not exist; the crawl records nothing but still
	// succeeds, and pages must serialize as an empty JSON array.
	site := &testSite{pages: map[string]string{}}
	server := httptest.NewServer(site.handler())
	defer server.Close()

	svc := NewService(testConfig())
	result, err := svc.Crawl(context.Background(), server.URL, 3)
	require.NoError(t, err)
	assert.Empty(t, result.Pages)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pages":[]`)
}

func TestCrawlInvalidRoot(t *testing.T) {
	svc := NewService(testConfig())
	_, err := svc.Crawl(context.Background(), "", 3)
	assert.Error(t, err)
}

func TestFetcherRejectsNonHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"not": "html"}`))
	}))
	defer server.Close()

	fetcher := NewFetcher(testConfig().Crawler, 1024*1024)
	assert.Nil(t, fetcher.Fetch(context.Background(), server.URL))
}

func TestFetcherRejectsOversizeBody(t *testing.T) {
	big := make([]byte, 2048)
	for i := range big {
		big[i] = 'x'
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>"))
		w.Write(big)
		w.Write([]byte("</body></html>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(testConfig().Crawler, 1024)
	assert.Nil(t, fetcher.Fetch(context.Background(), server.URL))
}

func TestFetcherFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>landed</p></body></html>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher := NewFetcher(testConfig().Crawler, 1024*1024)
	result := fetcher.Fetch(context.Background(), server.URL+"/start")

	require.NotNil(t, result)
	assert.Equal(t, server.URL+"/final", result.FinalURL)
	assert.Contains(t, result.HTML, "landed")
}

func TestBlockedPathTable(t *testing.T) {
	blocked := []string{
		"/login", "/sign-up", "/admin/users", "/account/settings",
		"/cart", "/checkout/payment", "/search", "/password/reset",
		"/logo.png", "/font.woff2", "/bundle.js", "/doc.pdf",
	}
	for _, path := range blocked {
		assert.True(t, isBlockedPath(path), "path %s should be blocked", path)
	}

	allowed := []string{"/", "/blog/post", "/docs/api", "/products/widget", "/accounting-tips"}
	for _, path := range allowed {
		assert.False(t, isBlockedPath(path), "path %s should be allowed", path)
	}
}
