package urlnorm

import (
	"fmt"
	"net/url"
	"strings"
)

// Mode selects which normalization rules apply beyond the shared ones
// (https scheme, fragment dropped).
type Mode int

const (
	// ModeCrawl strips query strings and trailing slashes so tracking
	// parameters do not explode the frontier. Used for frontier URLs.
	ModeCrawl Mode = iota
	// ModeCanonical preserves the query string so canonical links stay
	// faithful. Used for single-page extraction and rel=canonical.
	ModeCanonical
)

// InvalidURLError indicates the input could not be parsed as an
// absolute URL after scheme assumption or base resolution.
type InvalidURLError struct {
	Input string
	Err   error
}

func (e *InvalidURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid url %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid url %q", e.Input)
}

func (e *InvalidURLError) Unwrap() error {
	return e.Err
}

// Normalize canonicalizes a raw string into a comparable absolute URL.
// When base is empty and the input carries no scheme, https:// is
// assumed; otherwise the input resolves against base.
func Normalize(input string, base string, mode Mode) (string, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return "", &InvalidURLError{Input: input}
	}

	var parsed *url.URL
	var err error

	if base != "" {
		baseURL, berr := url.Parse(base)
		if berr != nil {
			return "", &InvalidURLError{Input: base, Err: berr}
		}
		parsed, err = baseURL.Parse(raw)
	} else {
		if !strings.Contains(raw, "://") {
			raw = "https://" + raw
		}
		parsed, err = url.Parse(raw)
	}
	if err != nil {
		return "", &InvalidURLError{Input: input, Err: err}
	}
	if parsed.Host == "" {
		return "", &InvalidURLError{Input: input}
	}

	parsed.Host = strings.ToLower(parsed.Host)
	// Loopback hosts keep their scheme so local fetches stay reachable
	if !isLoopback(parsed.Hostname()) {
		parsed.Scheme = "https"
	}
	parsed.Fragment = ""

	if parsed.Path == "" {
		parsed.Path = "/"
	}

	if mode == ModeCrawl {
		parsed.RawQuery = ""
		if parsed.Path != "/" {
			parsed.Path = strings.TrimRight(parsed.Path, "/")
			if parsed.Path == "" {
				parsed.Path = "/"
			}
		}
	}

	return parsed.String(), nil
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// HostKey lowercases a host and removes a single leading "www." so
// that www and apex hosts compare equal.
func HostKey(host string) string {
	key := strings.ToLower(host)
	key = strings.TrimPrefix(key, "www.")
	return key
}

// SameHost reports whether two URLs belong to the same host by HostKey
func SameHost(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return HostKey(ua.Hostname()) == HostKey(ub.Hostname())
}
