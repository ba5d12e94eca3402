package feeds

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ternarybob/speculum/internal/models"
)

// frontMatter is the YAML block emitted at the top of scaffold pages
type frontMatter struct {
	Title   string `yaml:"title"`
	Lastmod string `yaml:"lastmod"`
	Source  string `yaml:"source"`
}

// Summary renders the site-level markdown feed listing every page
// with its type, priority, and mirror URL.
func Summary(site string, pages []models.PageRecord, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# AI Mirror: %s\n\n", site))
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", generatedAt.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Pages: %d\n\n", len(pages)))

	if len(pages) == 0 {
		b.WriteString("No pages were discovered.\n")
		return b.String()
	}

	b.WriteString("| URL | Type | Priority | Mirror |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, page := range pages {
		b.WriteString(fmt.Sprintf("| %s | %s | %.2f | %s |\n",
			page.URL, page.PageType, page.Priority, page.MirrorURL))
	}

	return b.String()
}

// Entries renders one scaffold markdown document per page: YAML front
// matter followed by a placeholder body pointing at the source page.
func Entries(pages []models.PageRecord, generatedAt time.Time) []models.MarkdownEntry {
	entries := make([]models.MarkdownEntry, 0, len(pages))

	for _, page := range pages {
		entries = append(entries, models.MarkdownEntry{
			URL:      page.URL,
			Markdown: scaffoldPage(page, generatedAt),
		})
	}

	return entries
}

func scaffoldPage(page models.PageRecord, generatedAt time.Time) string {
	fm := frontMatter{
		Title:   pageTitle(page),
		Lastmod: generatedAt.UTC().Format(time.RFC3339),
		Source:  page.URL,
	}

	var b strings.Builder
	b.WriteString("---\n")
	if data, err := yaml.Marshal(&fm); err == nil {
		b.Write(data)
	}
	b.WriteString("---\n\n")
	b.WriteString(fmt.Sprintf("# %s\n\n", fm.Title))
	b.WriteString(fmt.Sprintf("source: %s\n\n", page.URL))
	b.WriteString(fmt.Sprintf("Page type: %s. Mirror: %s\n", page.PageType, page.MirrorURL))

	return b.String()
}

// pageTitle derives a display title from the page URL path
func pageTitle(page models.PageRecord) string {
	parsed, err := url.Parse(page.URL)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return string(page.PageType)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	last := segments[len(segments)-1]
	last = strings.NewReplacer("-", " ", "_", " ").Replace(last)
	if last == "" {
		return string(page.PageType)
	}
	return last
}
