package deps

import (
	"path"
	"slices"
	"strings"
)

// Manifest is a file routed to its parser.
type Manifest struct {
	Path      string         // Slash-separated path relative to the repository root
	Ecosystem string         // Name of the owning Language
	Parser    ManifestParser // Parser handling the file
}

type entry struct {
	lang   *Language
	parser ManifestParser
}

// Registry routes file paths to manifest parsers. Languages are consulted in
// the order given to [NewRegistry]; within a language, parsers are consulted
// in the order the language lists them.
//
// A Registry is immutable and safe for concurrent use.
type Registry struct {
	langs   []*Language
	entries []entry
}

// NewRegistry builds a registry from langs in priority order.
func NewRegistry(langs ...*Language) *Registry {
	r := &Registry{langs: slices.Clone(langs)}
	for _, l := range langs {
		for _, p := range l.Manifests() {
			r.entries = append(r.entries, entry{lang: l, parser: p})
		}
	}
	return r
}

// Languages returns the registered languages in priority order.
func (r *Registry) Languages() []*Language {
	return slices.Clone(r.langs)
}

// Route returns the first parser whose filename rules match the base name of
// filePath. Unknown files report false and are not an error.
func (r *Registry) Route(filePath string) (Manifest, bool) {
	name := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	for _, e := range r.entries {
		if e.parser.Supports(name) {
			return Manifest{Path: filePath, Ecosystem: e.lang.Name, Parser: e.parser}, true
		}
	}
	return Manifest{}, false
}

// Discover routes every file and returns the recognized manifests in input
// order.
func (r *Registry) Discover(files []string) []Manifest {
	var out []Manifest
	for _, f := range files {
		if m, ok := r.Route(f); ok {
			out = append(out, m)
		}
	}
	return out
}

// Patterns returns the union of all filename rules in registry order, without
// duplicates.
func (r *Registry) Patterns() []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range r.entries {
		for _, p := range e.parser.Patterns() {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// SparsePatterns returns the filename rules as sparse-checkout patterns.
// Globs such as "*.csproj" already match at any depth and are kept as is.
// Exact names are emitted twice, "**/name" and "name", to match both nested
// and root-level files.
func (r *Registry) SparsePatterns() []string {
	var out []string
	for _, p := range r.Patterns() {
		if strings.HasPrefix(p, "*") {
			out = append(out, p)
			continue
		}
		out = append(out, "**/"+p, p)
	}
	return out
}
