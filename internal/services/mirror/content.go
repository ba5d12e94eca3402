package mirror

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ternarybob/speculum/internal/common"
	"github.com/ternarybob/speculum/internal/models"
)

const (
	maxSummarySentences = 4
	maxFactsPerSection  = 5
	maxKeyTopics        = 10
)

var sentenceEnd = regexp.MustCompile(`[.!?]+(\s+|$)`)

// BuildContent derives the structured mirror content from an
// extraction result. Pure, no I/O.
func (s *Service) BuildContent(result *models.ExtractionResult) (*models.MirrorContent, error) {
	if result == nil {
		return nil, common.InvalidInput("missing extraction result", nil)
	}

	sections, body := parseSections(result.Markdown)

	structured := make([]models.StructuredSection, 0, len(sections))
	for _, sec := range sections {
		facts := splitSentences(sec.text)
		if len(facts) > maxFactsPerSection {
			facts = facts[:maxFactsPerSection]
		}
		structured = append(structured, models.StructuredSection{
			Section: sec.title,
			Facts:   facts,
		})
	}

	bodySentences := splitSentences(body)

	// Without ## sections the whole body collapses to one overview
	if len(structured) == 0 {
		facts := bodySentences
		if len(facts) > maxFactsPerSection {
			facts = facts[:maxFactsPerSection]
		}
		structured = append(structured, models.StructuredSection{
			Section: "Overview",
			Facts:   facts,
		})
	}

	summary := bodySentences
	if len(summary) > maxSummarySentences {
		summary = summary[:maxSummarySentences]
	}

	topics := result.Metadata.PrimaryTopics
	if len(topics) == 0 {
		for _, sec := range sections {
			topics = append(topics, sec.title)
		}
	}
	if len(topics) > maxKeyTopics {
		topics = topics[:maxKeyTopics]
	}

	return &models.MirrorContent{
		URL:               result.URL,
		MirrorURL:         s.MirrorURL(result.Canonical),
		Title:             result.Title,
		Summary:           strings.Join(summary, " "),
		StructuredContent: structured,
		KeyTopics:         topics,
		Metadata:          result.Metadata,
	}, nil
}

// mdSection is one ## block with its accumulated plain text
type mdSection struct {
	title string
	text  string
}

// parseSections walks the markdown AST collecting level-2 sections and
// the full stripped-of-markup body text.
func parseSections(source string) ([]mdSection, string) {
	src := []byte(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var sections []mdSection
	current := -1
	var body strings.Builder

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if heading, ok := node.(*ast.Heading); ok {
			if heading.Level == 2 {
				sections = append(sections, mdSection{title: nodeText(heading, src)})
				current = len(sections) - 1
			} else if heading.Level == 1 {
				current = -1
			}
			continue
		}

		blockText := nodeText(node, src)
		if blockText == "" {
			continue
		}

		if body.Len() > 0 {
			body.WriteByte(' ')
		}
		body.WriteString(blockText)

		if current >= 0 {
			if sections[current].text != "" {
				sections[current].text += " "
			}
			sections[current].text += blockText
		}
	}

	return sections, body.String()
}

// nodeText concatenates a node's text segments, dropping all markup
func nodeText(node ast.Node, source []byte) string {
	var b strings.Builder

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(strings.Join(strings.Fields(b.String()), " "))
}

// splitSentences breaks text on sentence-ending punctuation
func splitSentences(input string) []string {
	input = strings.Join(strings.Fields(input), " ")
	if input == "" {
		return nil
	}

	var sentences []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(input, -1) {
		sentence := strings.TrimSpace(input[start:loc[1]])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(input[start:]); rest != "" {
		sentences = append(sentences, rest)
	}

	return sentences
}
