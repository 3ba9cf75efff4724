package rust

import "github.com/matzehuels/techradar/pkg/deps"

// Language covers Cargo projects.
var Language = &deps.Language{
	Name:            "rust",
	Title:           "Rust",
	ManifestParsers: manifestParsers,
}

func manifestParsers() []deps.ManifestParser {
	return []deps.ManifestParser{&CargoToml{}}
}
