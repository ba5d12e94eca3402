package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCrawlMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare domain", "example.com", "https://example.com/"},
		{"http upgraded", "http://example.com/page", "https://example.com/page"},
		{"trailing slash removed", "https://example.com/about/", "https://example.com/about"},
		{"root keeps slash", "https://example.com/", "https://example.com/"},
		{"query stripped", "https://example.com/page?utm_source=x", "https://example.com/page"},
		{"fragment stripped", "https://example.com/page#section", "https://example.com/page"},
		{"host lowercased", "https://Example.COM/Page", "https://example.com/Page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, "", ModeCrawl)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeCanonicalMode(t *testing.T) {
	got, err := Normalize("https://example.com/page?id=42#top", "", ModeCanonical)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/page?id=42", got, "query preserved, fragment dropped")
}

func TestNormalizeWithBase(t *testing.T) {
	got, err := Normalize("/docs/intro", "https://example.com/blog/post", ModeCrawl)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/docs/intro", got)

	got, err = Normalize("../about", "https://example.com/blog/post", ModeCrawl)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/about", got)
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"example.com",
		"https://example.com/about/",
		"https://example.com/page?utm=1#frag",
		"https://www.example.com/docs/guide/",
	}

	for _, mode := range []Mode{ModeCrawl, ModeCanonical} {
		for _, input := range inputs {
			once, err := Normalize(input, "", mode)
			require.NoError(t, err)
			twice, err := Normalize(once, "", mode)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "normalize must be idempotent for %q", input)
		}
	}
}

func TestNormalizeInvalid(t *testing.T) {
	tests := []string{"", "   ", "https://"}

	for _, input := range tests {
		_, err := Normalize(input, "", ModeCrawl)
		assert.Error(t, err, "input %q should fail", input)

		var invalidErr *InvalidURLError
		assert.ErrorAs(t, err, &invalidErr)
	}
}

func TestHostKey(t *testing.T) {
	assert.Equal(t, "example.com", HostKey("www.example.com"))
	assert.Equal(t, "example.com", HostKey("Example.COM"))
	assert.Equal(t, "sub.example.com", HostKey("sub.example.com"))
	// Only one leading www. is removed
	assert.Equal(t, "www.example.com", HostKey("www.www.example.com"))
}

func TestSameHost(t *testing.T) {
	assert.True(t, SameHost("https://www.example.com/a", "https://example.com/b"))
	assert.False(t, SameHost("https://example.com/", "https://other.com/"))
}
