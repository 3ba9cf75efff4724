package techmap

import "strings"

// Wildcard is the only special character recognized in patterns. It matches
// zero or more characters, including '/'.
const Wildcard = "*"

// IsWildcard reports whether pattern contains at least one wildcard.
func IsWildcard(pattern string) bool {
	return strings.Contains(pattern, Wildcard)
}

// Match reports whether id matches pattern. Patterns without a wildcard
// require equality; patterns with wildcards must match the whole identifier.
// Unless caseSensitive is set, both sides are compared case-folded.
func Match(id, pattern string, caseSensitive bool) bool {
	if !caseSensitive {
		id = strings.ToLower(id)
		pattern = strings.ToLower(pattern)
	}
	if !IsWildcard(pattern) {
		return id == pattern
	}

	parts := strings.Split(pattern, Wildcard)
	if !strings.HasPrefix(id, parts[0]) {
		return false
	}
	rest := id[len(parts[0]):]

	last := parts[len(parts)-1]
	for _, p := range parts[1 : len(parts)-1] {
		i := strings.Index(rest, p)
		if i < 0 {
			return false
		}
		rest = rest[i+len(p):]
	}
	return len(rest) >= len(last) && strings.HasSuffix(rest, last)
}
