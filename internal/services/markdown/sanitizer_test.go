package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRemovesNoiseLines(t *testing.T) {
	input := "# Title\n\nReal content here.\n\nWe use cookies to improve your experience.\nSubscribe to our newsletter for updates!\n\nMore real content."
	result := Sanitize(input)

	assert.NotContains(t, result, "cookies")
	assert.NotContains(t, result, "newsletter")
	assert.Contains(t, result, "Real content here.")
	assert.Contains(t, result, "More real content.")
}

func TestSanitizeRemovesDashRuns(t *testing.T) {
	input := "Above\n" + strings.Repeat("-", 30) + "\nBelow"
	result := Sanitize(input)

	assert.NotContains(t, result, "-----")
	// A 19-dash run is below the threshold and survives
	short := strings.Repeat("-", 19)
	assert.Contains(t, Sanitize("x\n\n"+short+"\n\ny"), short)
}

func TestSanitizeRemovesFooterFragments(t *testing.T) {
	result := Sanitize("Content line.\n\nExplore more - jobs, news and events\n\nAnother line.")
	assert.NotContains(t, result, "Explore more")
	assert.Contains(t, result, "Content line.")
}

func TestSanitizePromotesLabeledListItems(t *testing.T) {
	input := "- item one\n- 2. Requirements\n- item two"
	result := Sanitize(input)

	assert.Contains(t, result, "### Requirements")
	assert.NotContains(t, result, "- 2. Requirements")
	assert.Contains(t, result, "- item one")

	// Unknown labels stay list items
	unchanged := Sanitize("- 2. Something Unrecognized Entirely")
	assert.Contains(t, unchanged, "- 2. Something Unrecognized Entirely")
}

func TestSanitizePromotesTitleCaseLines(t *testing.T) {
	input := "Intro paragraph ends here.\n\nKey Product Features\n\nThe features are listed below."
	result := Sanitize(input)
	assert.Contains(t, result, "### Key Product Features")

	// Lines starting with a digit or dash are never promoted
	result = Sanitize("text before.\n\n4 Reasons To Care\n\ntext after.")
	assert.NotContains(t, result, "### 4 Reasons")
}

func TestSanitizeRepairsParagraphBreaks(t *testing.T) {
	result := Sanitize("the first sentence ends\nNext paragraph starts here and continues.")
	assert.Contains(t, result, "ends\n\nNext")

	result = Sanitize("A sentence ends.\nAnother begins right away and keeps going.")
	assert.Contains(t, result, "ends.\n\nAnother")
}

func TestSanitizeCollapsesNewlines(t *testing.T) {
	result := Sanitize("one\n\n\n\n\ntwo")
	assert.Equal(t, "one\n\ntwo", result)
}

func TestSanitizeNoiseRemovalIdempotent(t *testing.T) {
	inputs := []string{
		"# Title\n\nWe use cookies here.\n\n" + strings.Repeat("-", 25) + "\n\nExplore more - stuff\n\n\n\nBody text.",
		"plain body with nothing to remove",
		"",
	}

	for _, input := range inputs {
		once := Sanitize(input)
		twice := Sanitize(once)
		assert.Equal(t, once, twice, "sanitize must be a fixed point on its own output")
	}
}
