package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

// NoisePhrases removes whole lines containing conversational or UI
// noise. Matching is a case-insensitive substring check. Policy table,
// tune rather than special-case in code.
var NoisePhrases = []string{
	"accept all cookies",
	"accept cookies",
	"cookie settings",
	"cookie policy",
	"we use cookies",
	"subscribe to our newsletter",
	"sign up for our newsletter",
	"enable javascript",
	"javascript is disabled",
	"share this article",
	"share on facebook",
	"share on twitter",
	"follow us on",
	"skip to content",
	"skip to main content",
	"back to top",
	"click here to",
	"advertisement",
	"sponsored content",
}

// SectionLabels are list items that are really section headers when
// they appear as "<bullet> <n>. <label>". Policy table.
var SectionLabels = []string{
	"What You'll Do",
	"What You Will Do",
	"Requirements",
	"Qualifications",
	"Responsibilities",
	"Benefits",
	"About Us",
	"About The Role",
	"Who You Are",
	"What We Offer",
	"Overview",
	"Key Features",
	"Getting Started",
	"How It Works",
	"Next Steps",
}

var (
	dashRunPattern    = regexp.MustCompile(`-{20,}`)
	footerPattern     = regexp.MustCompile(`(?i)^.*explore more\s*-.*$`)
	numberedLabel     = regexp.MustCompile(`^\s*[-*]\s+(\d+)\.\s+(.+?)\s*$`)
	// Short standalone title-case line: starts with a capital, 4-70
	// chars, limited punctuation, no leading digit or dash.
	titleCasePattern  = regexp.MustCompile(`^[A-Z][A-Za-z0-9 ,'&:()/\-]{3,69}$`)
	paragraphBreak    = regexp.MustCompile(`([a-z0-9])\n([A-Z])`)
	sentenceBreak     = regexp.MustCompile(`([.!?])\n([A-Z])`)
	newlineRunPattern = regexp.MustCompile(`\n{3,}`)
)

// sanitizePass is one ordered transform in the structuring pipeline
type sanitizePass struct {
	name  string
	apply func(string) string
}

// sanitizePasses run in order; each pass sees the previous pass's
// output. Order matters: noise removal precedes heading promotion,
// whitespace collapse runs last.
var sanitizePasses = []sanitizePass{
	{"remove-noise-lines", removeNoiseLines},
	{"remove-dash-runs", removeDashRuns},
	{"remove-footer-fragments", removeFooterFragments},
	{"promote-labeled-list-items", promoteLabeledListItems},
	{"promote-title-case-lines", promoteTitleCaseLines},
	{"repair-paragraph-breaks", repairParagraphBreaks},
	{"collapse-newlines", collapseNewlines},
}

// Sanitize post-processes raw markdown into a normalized document.
// Pure text transform; heuristic and deliberately lossy.
func Sanitize(raw string) string {
	result := raw
	for _, pass := range sanitizePasses {
		result = pass.apply(result)
	}
	return strings.TrimSpace(result)
}

func removeNoiseLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		lower := strings.ToLower(line)
		noisy := false
		for _, phrase := range NoisePhrases {
			if strings.Contains(lower, phrase) {
				noisy = true
				break
			}
		}
		if !noisy {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func removeDashRuns(text string) string {
	return dashRunPattern.ReplaceAllString(text, "")
}

func removeFooterFragments(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if footerPattern.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// promoteLabeledListItems turns "- 1. Requirements" style bullets into
// "### Requirements" headings, breaking the erroneous list run.
func promoteLabeledListItems(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		m := numberedLabel.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		label := m[2]
		for _, known := range SectionLabels {
			if strings.EqualFold(label, known) {
				lines[i] = fmt.Sprintf("\n### %s\n", label)
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

// promoteTitleCaseLines promotes standalone short title-case lines to
// headings. Known to over/under-fire on short proper-noun sentences.
func promoteTitleCaseLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, ">") {
			continue
		}
		if !titleCasePattern.MatchString(trimmed) {
			continue
		}

		prevBlank := i == 0 || strings.TrimSpace(lines[i-1]) == ""
		nextBlank := i == len(lines)-1 || strings.TrimSpace(lines[i+1]) == ""
		if prevBlank && nextBlank {
			lines[i] = "### " + trimmed
		}
	}
	return strings.Join(lines, "\n")
}

// repairParagraphBreaks inserts blank lines where paragraph boundaries
// were lost: a lowercase/digit line butted against an uppercase line,
// and sentence-ending punctuation directly followed by a capital.
func repairParagraphBreaks(text string) string {
	text = paragraphBreak.ReplaceAllString(text, "$1\n\n$2")
	text = sentenceBreak.ReplaceAllString(text, "$1\n\n$2")
	return text
}

func collapseNewlines(text string) string {
	return newlineRunPattern.ReplaceAllString(text, "\n\n")
}
