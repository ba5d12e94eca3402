package crawler

import (
	"regexp"
	"strings"
)

// blockedExtensions are static asset suffixes the frontier never
// fetches: images, fonts, archives, media, stylesheets, scripts.
var blockedExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".ico", ".bmp", ".avif",
	".woff", ".woff2", ".ttf", ".eot", ".otf",
	".zip", ".tar", ".gz", ".rar", ".7z",
	".mp3", ".mp4", ".avi", ".mov", ".webm", ".ogg", ".wav",
	".css", ".js", ".mjs", ".map",
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
}

// blockedPathPatterns is the fixed path denylist for account, auth,
// commerce, and search surfaces. Ordered policy table.
var blockedPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/(log[-_]?in|log[-_]?out|sign[-_]?in|sign[-_]?up|sign[-_]?out)(/|$)`),
	regexp.MustCompile(`(?i)/(admin|wp-admin|dashboard)(/|$)`),
	regexp.MustCompile(`(?i)/(account|my[-_]?account|profile|settings)(/|$)`),
	regexp.MustCompile(`(?i)/(cart|checkout|basket)(/|$)`),
	regexp.MustCompile(`(?i)/(search|\?s=|results)(/|$)`),
	regexp.MustCompile(`(?i)/(password|reset|forgot)(/|$)`),
}

// isBlockedPath reports whether a path hits the static-asset or
// denylist filters.
func isBlockedPath(path string) bool {
	lower := strings.ToLower(path)

	for _, ext := range blockedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	for _, pattern := range blockedPathPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}

	return false
}
