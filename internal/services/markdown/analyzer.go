package markdown

import (
	"regexp"
	"strings"

	"github.com/ternarybob/speculum/internal/models"
)

var (
	h1Pattern          = regexp.MustCompile(`(?m)^# .+`)
	headingPattern     = regexp.MustCompile(`(?m)^(#{1,6}) +(.+)$`)
	frontmatterPattern = regexp.MustCompile(`(?s)^---\n.*?\n---`)
	urlPattern         = regexp.MustCompile(`(?mi)^(## URL|source:\s*https?://)`)
	contentHeading     = regexp.MustCompile(`(?m)^## Content\b`)
	metadataPattern    = regexp.MustCompile(`(?mi)^(## Metadata|(author|published|updated|language):)`)
	wordPattern        = regexp.MustCompile(`\w+`)
	listItemPattern    = regexp.MustCompile(`(?m)^\s*([-*+]|\d+\.) +`)
	fencePattern       = regexp.MustCompile("(?m)^```")
	inlineLinkPattern  = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
	uiNoisePattern     = regexp.MustCompile(`(?i)(cookie|gdpr|subscribe now|sign up|newsletter)`)
)

// Analyze scores a markdown document's fitness for AI consumption.
// Pure and deterministic; recomputed on every call.
func Analyze(markdown string) *models.StructureAnalysis {
	analysis := &models.StructureAnalysis{
		Sections: detectSections(markdown),
		Metrics:  computeMetrics(markdown),
		Headings: collectHeadings(markdown),
	}
	analysis.Warnings = evaluateWarnings(markdown, analysis)
	analysis.Health = scoreHealth(analysis)
	analysis.AIReadability = scoreAIReadability(markdown, analysis)
	return analysis
}

func detectSections(markdown string) models.SectionFlags {
	nonEmpty := 0
	for _, line := range strings.Split(markdown, "\n") {
		if strings.TrimSpace(line) != "" {
			nonEmpty++
		}
	}

	return models.SectionFlags{
		HasTitle:       h1Pattern.MatchString(markdown),
		HasFrontmatter: frontmatterPattern.MatchString(markdown),
		HasURL:         urlPattern.MatchString(markdown),
		HasContent:     contentHeading.MatchString(markdown) || nonEmpty > 5,
		HasMetadata:    metadataPattern.MatchString(markdown),
	}
}

func computeMetrics(markdown string) models.StructureMetrics {
	metrics := models.StructureMetrics{
		WordCount:      len(wordPattern.FindAllString(markdown, -1)),
		HeadingCount:   len(headingPattern.FindAllString(markdown, -1)),
		ListItemCount:  len(listItemPattern.FindAllString(markdown, -1)),
		CodeBlockCount: len(fencePattern.FindAllString(markdown, -1)) / 2,
		LinkCount:      len(inlineLinkPattern.FindAllString(markdown, -1)),
		ParagraphCount: len(paragraphs(markdown)),
	}
	return metrics
}

// paragraphs returns blank-line-delimited blocks that are neither
// headings nor list items.
func paragraphs(markdown string) []string {
	var result []string
	for _, block := range strings.Split(markdown, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if strings.HasPrefix(block, "#") || listItemPattern.MatchString(block) {
			continue
		}
		result = append(result, block)
	}
	return result
}

func collectHeadings(markdown string) []string {
	var headings []string
	for _, m := range headingPattern.FindAllStringSubmatch(markdown, -1) {
		headings = append(headings, strings.TrimSpace(m[2]))
	}
	return headings
}

func evaluateWarnings(markdown string, a *models.StructureAnalysis) []models.StructureWarning {
	var warnings []models.StructureWarning

	add := func(severity models.WarningSeverity, message string) {
		warnings = append(warnings, models.StructureWarning{Severity: severity, Message: message})
	}

	if !a.Sections.HasTitle {
		add(models.SeverityError, "Document has no H1 title")
	}
	if !contentHeading.MatchString(markdown) && a.Metrics.ParagraphCount < 3 {
		add(models.SeverityError, "Document has no content section and fewer than 3 paragraphs")
	}
	if !a.Sections.HasURL && !a.Sections.HasFrontmatter {
		add(models.SeverityWarning, "Document has no URL reference or frontmatter")
	}
	if !a.Sections.HasMetadata {
		add(models.SeverityInfo, "Document has no metadata section")
	}
	if a.Metrics.WordCount < 50 {
		add(models.SeverityWarning, "Document has fewer than 50 words")
	}
	if a.Metrics.HeadingCount == 0 {
		add(models.SeverityWarning, "Document has no headings")
	}
	for _, p := range paragraphs(markdown) {
		if len(wordPattern.FindAllString(p, -1)) > 200 {
			add(models.SeverityInfo, "Document contains a paragraph longer than 200 words")
			break
		}
	}

	return warnings
}

// scoreHealth computes the 0-100 additive score: 40 for section
// completeness, 40 for content richness, 20 remaining after warning
// penalties.
func scoreHealth(a *models.StructureAnalysis) models.HealthScore {
	score := 0

	// Section completeness, 40 max
	if a.Sections.HasTitle {
		score += 10
	}
	if a.Sections.HasFrontmatter {
		score += 10
	}
	if a.Sections.HasURL {
		score += 10
	}
	if a.Sections.HasContent {
		score += 5
	}
	if a.Sections.HasMetadata {
		score += 5
	}

	// Content richness, 40 max
	if a.Metrics.WordCount > 100 {
		score += 10
	}
	if a.Metrics.WordCount > 300 {
		score += 5
	}
	if a.Metrics.HeadingCount > 0 {
		score += 10
	}
	if a.Metrics.HeadingCount > 3 {
		score += 5
	}
	if a.Metrics.ParagraphCount > 2 {
		score += 5
	}
	if a.Metrics.ListItemCount > 0 {
		score += 5
	}

	// Warning penalty, 20 max remaining
	errorCount := 0
	warningCount := 0
	for _, w := range a.Warnings {
		switch w.Severity {
		case models.SeverityError:
			errorCount++
		case models.SeverityWarning:
			warningCount++
		}
	}
	penalty := 20 - 10*errorCount - 3*warningCount
	if penalty > 0 {
		score += penalty
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return models.HealthScore{
		Score:       score,
		Grade:       gradeFor(score).name,
		Color:       gradeFor(score).color,
		Description: gradeFor(score).description,
	}
}

type grade struct {
	name        string
	color       string
	description string
}

var grades = []struct {
	threshold int
	grade     grade
}{
	{85, grade{"Excellent", "green", "Well structured and ready for AI consumption"}},
	{70, grade{"Good", "lightgreen", "Structured with minor gaps"}},
	{50, grade{"Fair", "orange", "Usable but missing important structure"}},
	{0, grade{"Poor", "red", "Needs significant structural improvement"}},
}

func gradeFor(score int) grade {
	for _, g := range grades {
		if score >= g.threshold {
			return g.grade
		}
	}
	return grades[len(grades)-1].grade
}

// scoreAIReadability computes the independent machine-readability
// score. Starts at 100 and adjusts per factor, clamped to [0,100].
func scoreAIReadability(markdown string, a *models.StructureAnalysis) models.AIReadability {
	const strength = 5

	score := 100
	var factors []string

	adjust := func(delta int, factor string) {
		score += delta
		factors = append(factors, factor)
	}

	if a.Sections.HasFrontmatter {
		adjust(strength, "frontmatter present")
	} else {
		adjust(-10, "missing frontmatter")
	}

	switch {
	case a.Metrics.HeadingCount == 0:
		adjust(-15, "no headings")
	case a.Metrics.HeadingCount >= 3:
		adjust(strength, "well sectioned")
	}

	if a.Metrics.ListItemCount > 0 {
		adjust(strength, "contains lists")
	}

	if a.Metrics.WordCount < 100 {
		adjust(-10, "thin content")
	} else {
		adjust(strength, "substantial content")
	}

	if a.Metrics.CodeBlockCount > 0 {
		adjust(strength, "contains code blocks")
	}
	if a.Metrics.LinkCount > 0 {
		adjust(strength, "contains links")
	}
	if uiNoisePattern.MatchString(markdown) {
		adjust(-5, "contains UI noise")
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return models.AIReadability{Score: score, Factors: factors}
}
