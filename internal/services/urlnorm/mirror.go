package urlnorm

import "net/url"

// Mirror derives the AI-mirror counterpart of a canonical URL by
// prefixing its host. Deterministic and reversible given the
// canonical. Returns "" for unparsable input.
func Mirror(canonical string, hostPrefix string) string {
	parsed, err := url.Parse(canonical)
	if err != nil || parsed.Host == "" {
		return ""
	}
	parsed.Host = hostPrefix + parsed.Host
	return parsed.String()
}
