package deps

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ManifestParser extracts raw package identifiers from manifest content.
//
// Parsers work on bytes rather than paths so the same parser serves the
// working tree and historical revisions read from version control.
type ManifestParser interface {
	// Parse returns the identifiers declared in content, deduplicated and in
	// declaration order. The path is used only for format dispatch within a
	// parser that handles several file names. An error means the content
	// could not be understood at all.
	Parse(path string, content []byte) ([]string, error)

	// Supports reports whether this parser handles the given base filename.
	Supports(filename string) bool

	// Patterns returns the filename rules the parser declares: exact base
	// names or globs such as "*.csproj".
	Patterns() []string

	// Type returns the manifest type identifier (e.g., "package.json").
	Type() string
}

// MatchFilename reports whether filename, a base name, matches any of
// patterns. Exact names compare case-insensitively; patterns containing glob
// metacharacters are matched with doublestar semantics on the lowercased name.
func MatchFilename(patterns []string, filename string) bool {
	lower := strings.ToLower(filename)
	for _, p := range patterns {
		if !isGlob(p) {
			if strings.EqualFold(p, filename) {
				return true
			}
			continue
		}
		if ok, _ := doublestar.Match(strings.ToLower(p), lower); ok {
			return true
		}
	}
	return false
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Extract runs p over content and never fails: a parse error or a panic in
// the parser is reported to logf and yields an empty list. logf may be nil.
func Extract(p ManifestParser, filePath string, content []byte, logf func(string, ...any)) (out []string) {
	defer func() {
		if r := recover(); r != nil {
			if logf != nil {
				logf("parse %s (%s): panic: %v", filePath, p.Type(), r)
			}
			out = []string{}
		}
	}()

	names, err := p.Parse(filePath, content)
	if err != nil {
		if logf != nil {
			logf("parse %s (%s): %v", filePath, p.Type(), err)
		}
		return []string{}
	}
	if names == nil {
		return []string{}
	}
	return names
}
