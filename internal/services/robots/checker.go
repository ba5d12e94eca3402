package robots

import (
	"regexp"
	"strings"
)

// rule is one Allow or Disallow path pattern. Patterns containing a
// "*" wildcard compile to a prefix regexp; plain patterns stay as
// string prefixes.
type rule struct {
	prefix  string
	pattern *regexp.Regexp // nil for plain prefix rules
}

func (r rule) matches(path string) bool {
	if r.pattern != nil {
		return r.pattern.MatchString(path)
	}
	return strings.HasPrefix(path, r.prefix)
}

// Checker answers allow/disallow decisions for one origin. The zero
// value is permissive.
type Checker struct {
	allows    []rule
	disallows []rule
}

// Allows reports whether the path may be fetched. A path matching any
// Allow rule is permitted; otherwise it is denied only when at least
// one Disallow rule exists and one matches.
func (c *Checker) Allows(path string) bool {
	if path == "" {
		path = "/"
	}

	for _, r := range c.allows {
		if r.matches(path) {
			return true
		}
	}

	if len(c.disallows) == 0 {
		return true
	}

	for _, r := range c.disallows {
		if r.matches(path) {
			return false
		}
	}

	return true
}

// Parse builds a Checker from a robots.txt body. Only rules in the
// User-agent: * group apply; all other groups are ignored with no
// inheritance between groups.
func Parse(body string) *Checker {
	checker := &Checker{}

	active := false
	lastWasAgent := false

	for _, line := range strings.Split(body, "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "user-agent":
			// Consecutive user-agent lines share one group header
			if !lastWasAgent {
				active = false
			}
			if value == "*" {
				active = true
			}
			lastWasAgent = true
		case "allow":
			lastWasAgent = false
			if active && value != "" {
				checker.allows = append(checker.allows, newRule(value))
			}
		case "disallow":
			lastWasAgent = false
			if active && value != "" {
				checker.disallows = append(checker.disallows, newRule(value))
			}
		default:
			lastWasAgent = false
		}
	}

	return checker
}

// newRule translates a robots path pattern into a matcher. "*" matches
// any character sequence; everything else is literal.
func newRule(pattern string) rule {
	if !strings.Contains(pattern, "*") {
		return rule{prefix: pattern}
	}

	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	re, err := regexp.Compile("^" + strings.Join(parts, ".*"))
	if err != nil {
		return rule{prefix: strings.SplitN(pattern, "*", 2)[0]}
	}
	return rule{prefix: pattern, pattern: re}
}
