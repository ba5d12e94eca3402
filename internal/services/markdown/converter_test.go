package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMarkdownBasics(t *testing.T) {
	conv := NewConverter()

	result, err := conv.ToMarkdown("<h2>Section</h2><p>Some <strong>bold</strong> text.</p><ul><li>first</li><li>second</li></ul>")
	require.NoError(t, err)

	assert.Contains(t, result, "## Section")
	assert.Contains(t, result, "**bold**")
	assert.Contains(t, result, "- first")
	assert.Contains(t, result, "- second")
}

func TestToMarkdownFencedCode(t *testing.T) {
	conv := NewConverter()

	result, err := conv.ToMarkdown("<pre><code>fmt.Println(\"hi\")</code></pre>")
	require.NoError(t, err)
	assert.Contains(t, result, "```")
	assert.Contains(t, result, `fmt.Println("hi")`)
}

func TestToMarkdownTablePreserved(t *testing.T) {
	conv := NewConverter()

	result, err := conv.ToMarkdown("<table><tr><th>Name</th><th>Value</th></tr><tr><td>a</td><td>1</td></tr></table>")
	require.NoError(t, err)
	assert.Contains(t, result, "| Name | Value |")
	assert.Contains(t, result, "| a | 1 |")
}

func TestToMarkdownEmptyInput(t *testing.T) {
	conv := NewConverter()

	result, err := conv.ToMarkdown("   ")
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestFromDocumentPrefersArticle(t *testing.T) {
	conv := NewConverter()

	html := `<html><body>
<nav><a href="/">Home</a></nav>
<article><h1>Story</h1><p>The article body text.</p></article>
<footer>footer junk</footer>
</body></html>`

	result := conv.FromDocument(html)
	assert.Contains(t, result, "# Story")
	assert.Contains(t, result, "The article body text.")
	assert.NotContains(t, result, "footer junk")
	assert.NotContains(t, result, "Home")
}

func TestFromDocumentFallsBackToMain(t *testing.T) {
	conv := NewConverter()

	result := conv.FromDocument("<html><body><main><p>main content only</p></main></body></html>")
	assert.Contains(t, result, "main content only")
}

func TestFromDocumentNothingExtractable(t *testing.T) {
	conv := NewConverter()

	result := conv.FromDocument("<html><body><div><p>loose text outside containers</p></div></body></html>")
	assert.Equal(t, FallbackContent, result)

	result = conv.FromDocument("<html><body></body></html>")
	assert.Equal(t, FallbackContent, result)
}
