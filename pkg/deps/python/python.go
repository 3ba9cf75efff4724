package python

import (
	"regexp"

	"github.com/matzehuels/techradar/pkg/deps"
)

// Language covers pip, setuptools, Poetry and Pipenv projects.
var Language = &deps.Language{
	Name:            "python",
	Title:           "Python",
	ManifestParsers: manifestParsers,
}

func manifestParsers() []deps.ManifestParser {
	return []deps.ManifestParser{
		&Requirements{},
		&SetupPy{},
		&PyProject{},
		&Pipfile{},
	}
}

// depNameRE captures the distribution name at the start of a PEP 508
// requirement string.
var depNameRE = regexp.MustCompile(`^([a-zA-Z0-9][-a-zA-Z0-9._]*)`)

// quotedRE matches single- or double-quoted string literals.
var quotedRE = regexp.MustCompile(`"([^"\n]*)"|'([^'\n]*)'`)

// requirementName returns the distribution name of a requirement string, or
// "" for URLs, options and comments.
func requirementName(req string) string {
	if m := depNameRE.FindStringSubmatch(req); len(m) > 1 {
		return m[1]
	}
	return ""
}

// quotedNames returns the requirement names of every string literal in s.
func quotedNames(s string) []string {
	var names []string
	for _, m := range quotedRE.FindAllStringSubmatch(s, -1) {
		lit := m[1]
		if lit == "" {
			lit = m[2]
		}
		names = append(names, requirementName(lit))
	}
	return deps.Unique(names)
}

// arrayLiteral returns the body of the bracketed list whose opening "[" ends
// the first match of open. Brackets inside string literals, such as extras
// in "uvicorn[standard]", do not count. An unterminated list runs to the end
// of content.
func arrayLiteral(content []byte, open *regexp.Regexp) (string, bool) {
	loc := open.FindIndex(content)
	if loc == nil {
		return "", false
	}
	s := string(content[loc[1]:])
	depth := 1
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth == 0 {
				return s[:i], true
			}
		}
	}
	return s, true
}
