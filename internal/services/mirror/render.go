package mirror

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ternarybob/speculum/internal/models"
)

// frontMatter is the YAML header of a rendered mirror page
type frontMatter struct {
	Title   string `yaml:"title"`
	Lastmod string `yaml:"lastmod"`
	Source  string `yaml:"source"`
}

// RenderFrontMatter renders the extraction as markdown with YAML front
// matter (title, lastmod, source).
func RenderFrontMatter(result *models.ExtractionResult, now time.Time) string {
	fm := frontMatter{
		Title:   result.Title,
		Lastmod: now.UTC().Format(time.RFC3339),
		Source:  result.URL,
	}

	var b strings.Builder
	b.WriteString("---\n")
	if data, err := yaml.Marshal(&fm); err == nil {
		b.Write(data)
	}
	b.WriteString("---\n\n")
	b.WriteString(fmt.Sprintf("# %s\n\n", result.Title))
	b.WriteString(result.Markdown)
	b.WriteString("\n")

	return b.String()
}

// RenderMDF renders the extraction as a structured MDF document. The
// section headings and their order are a wire contract; downstream
// parsers split on "##".
func RenderMDF(result *models.ExtractionResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s\n\n", result.Title))

	b.WriteString("## URL\n\n")
	b.WriteString(result.URL + "\n\n")

	b.WriteString("## Canonical\n\n")
	b.WriteString(result.Canonical + "\n\n")

	b.WriteString("## Content\n\n")
	b.WriteString(result.Markdown + "\n\n")

	b.WriteString("## Metadata\n\n")
	writeMetadata(&b, result.Metadata)
	b.WriteString("\n")

	b.WriteString("## Schema Hints\n\n")
	writeSchemaHints(&b, result)

	return b.String()
}

func writeMetadata(b *strings.Builder, meta models.PageMetadata) {
	writeField := func(key, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("- %s: %s\n", key, value))
		}
	}

	writeField("author", meta.Author)
	writeField("published", meta.Published)
	writeField("updated", meta.Updated)
	writeField("language", meta.Language)
	writeField("content_type", meta.ContentType)
	if len(meta.PrimaryTopics) > 0 {
		b.WriteString(fmt.Sprintf("- topics: %s\n", strings.Join(meta.PrimaryTopics, ", ")))
	}
	if len(meta.Entities) > 0 {
		b.WriteString(fmt.Sprintf("- entities: %s\n", strings.Join(meta.Entities, ", ")))
	}
}

func writeSchemaHints(b *strings.Builder, result *models.ExtractionResult) {
	contentType := result.Metadata.ContentType
	if contentType == "" {
		contentType = "webpage"
	}
	b.WriteString(fmt.Sprintf("- type: %s\n", contentType))
	b.WriteString(fmt.Sprintf("- source: %s\n", result.Canonical))
	if result.Metadata.Language != "" {
		b.WriteString(fmt.Sprintf("- inLanguage: %s\n", result.Metadata.Language))
	}
	if result.Metadata.Author != "" {
		b.WriteString(fmt.Sprintf("- author: %s\n", result.Metadata.Author))
	}
	if result.Metadata.Published != "" {
		b.WriteString(fmt.Sprintf("- datePublished: %s\n", result.Metadata.Published))
	}
}
