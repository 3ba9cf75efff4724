package javascript

import "github.com/matzehuels/techradar/pkg/deps"

// Language covers JavaScript and TypeScript projects managed with npm,
// yarn or pnpm.
var Language = &deps.Language{
	Name:            "javascript",
	Title:           "JavaScript/TypeScript",
	ManifestParsers: manifestParsers,
}

func manifestParsers() []deps.ManifestParser {
	return []deps.ManifestParser{&PackageJSON{}}
}
