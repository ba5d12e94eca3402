package markdown

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// FallbackContent is substituted when a page yields nothing extractable
const FallbackContent = "No readable content could be extracted from this page."

// noiseSelectors are stripped before main-content detection
const noiseSelectors = "script, style, noscript, nav, footer, aside, header, form, iframe"

// contentSelectors are tried in order when no <article> subtree exists
var contentSelectors = []string{
	"[role='main']",
	"#content",
	".content",
	".main-content",
	"#main",
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Converter turns article HTML into normalized markdown
type Converter struct {
	conv *md.Converter
}

// NewConverter creates a markdown converter using ATX headings, fenced
// code blocks, and dash bullets. Tables convert via the table plugin
// rather than being flattened to text.
func NewConverter() *Converter {
	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle:     "atx",
		BulletListMarker: "-",
		CodeBlockStyle:   "fenced",
	})
	conv.Use(plugin.Table())

	return &Converter{conv: conv}
}

// ToMarkdown converts an article HTML fragment to markdown. Returns
// the empty string for empty or whitespace-only input.
func (c *Converter) ToMarkdown(articleHTML string) (string, error) {
	if strings.TrimSpace(articleHTML) == "" {
		return "", nil
	}

	markdown, err := c.conv.ConvertString(articleHTML)
	if err != nil {
		return "", err
	}

	return postProcess(markdown), nil
}

// FromDocument isolates a full document's primary content and converts
// it to markdown. Detection order: largest <article> subtree, then the
// first matching content container, then <main>. Yields FallbackContent
// when nothing extractable remains.
func (c *Converter) FromDocument(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return FallbackContent
	}

	doc.Find(noiseSelectors).Remove()

	content := findMainContent(doc)
	if content == nil {
		return FallbackContent
	}

	markdown := postProcess(c.conv.Convert(content))
	if markdown == "" {
		return FallbackContent
	}
	return markdown
}

// findMainContent returns the primary article subtree, or nil
func findMainContent(doc *goquery.Document) *goquery.Selection {
	// Prefer the <article> with the most text when several exist
	var best *goquery.Selection
	bestLen := 0
	doc.Find("article").Each(func(_ int, sel *goquery.Selection) {
		if l := len(strings.TrimSpace(sel.Text())); l > bestLen {
			best = sel
			bestLen = l
		}
	})
	if best != nil && bestLen > 0 {
		return best
	}

	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
			return sel
		}
	}

	if sel := doc.Find("main").First(); sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
		return sel
	}

	return nil
}

// postProcess trims trailing whitespace per line, collapses blank-line
// runs, and trims the whole document.
func postProcess(markdown string) string {
	lines := strings.Split(markdown, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	result := strings.Join(lines, "\n")
	result = excessNewlines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
