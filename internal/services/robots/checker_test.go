package robots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseStarBlockOnly(t *testing.T) {
	body := `User-agent: Googlebot
Disallow: /google-only

User-agent: *
Disallow: /private
Allow: /private/public
`
	checker := Parse(body)

	assert.True(t, checker.Allows("/google-only"), "other agent blocks are ignored")
	assert.False(t, checker.Allows("/private/area"))
	assert.True(t, checker.Allows("/private/public/page"), "allow wins over disallow")
	assert.True(t, checker.Allows("/"))
}

func TestParseConsecutiveAgents(t *testing.T) {
	body := `User-agent: Googlebot
User-agent: *
Disallow: /admin
`
	checker := Parse(body)
	assert.False(t, checker.Allows("/admin/settings"))
}

func TestParseWildcards(t *testing.T) {
	checker := Parse("User-agent: *\nDisallow: /*/print\n")

	assert.False(t, checker.Allows("/articles/print"))
	assert.False(t, checker.Allows("/a/b/print-view"))
	assert.True(t, checker.Allows("/print"))
}

func TestNoDisallowRulesIsPermissive(t *testing.T) {
	checker := Parse("User-agent: *\n")
	assert.True(t, checker.Allows("/anything"))

	empty := Parse("")
	assert.True(t, empty.Allows("/anything"))
}

func TestCommentsAndCaseInsensitiveKeys(t *testing.T) {
	body := `# site policy
USER-AGENT: *
DISALLOW: /secret # inline comment
`
	checker := Parse(body)
	assert.False(t, checker.Allows("/secret/page"))
}

func TestLoadMissingRobotsIsPermissive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	svc := NewService("test-agent", 5*time.Second)
	checker := svc.Load(context.Background(), server.URL)

	assert.True(t, checker.Allows("/anything"))
}

func TestLoadParsesServedRobots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/robots.txt", r.URL.Path)
		w.Write([]byte("User-agent: *\nDisallow: /blocked\n"))
	}))
	defer server.Close()

	svc := NewService("test-agent", 5*time.Second)
	checker := svc.Load(context.Background(), server.URL)

	assert.False(t, checker.Allows("/blocked"))
	assert.True(t, checker.Allows("/open"))
}
