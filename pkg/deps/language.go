package deps

// Language describes one ecosystem and the manifest formats it understands.
//
// Each language subpackage (javascript, python, golang, ...) exports a
// Language value. Registries are built from an ordered list of them.
type Language struct {
	// Name is the ecosystem identifier (e.g., "javascript", "go"). It is also
	// the name of the technology mapping table for the ecosystem.
	Name string

	// Title is a human-readable label (e.g., "JavaScript/TypeScript").
	Title string

	// ManifestParsers returns the parsers for this ecosystem in priority order.
	ManifestParsers func() []ManifestParser
}

// Manifests returns the language's parsers, or nil if it has none.
func (l *Language) Manifests() []ManifestParser {
	if l.ManifestParsers == nil {
		return nil
	}
	return l.ManifestParsers()
}

// Patterns returns the filename rules of all the language's parsers.
func (l *Language) Patterns() []string {
	var out []string
	for _, p := range l.Manifests() {
		out = append(out, p.Patterns()...)
	}
	return out
}

// FindLanguage returns the Language with the given name from the provided list, or nil if not found.
func FindLanguage(name string, languages []*Language) *Language {
	for _, lang := range languages {
		if lang.Name == name {
			return lang
		}
	}
	return nil
}
