package golang

import "github.com/matzehuels/techradar/pkg/deps"

// Language covers Go modules.
var Language = &deps.Language{
	Name:            "go",
	Title:           "Go",
	ManifestParsers: manifestParsers,
}

func manifestParsers() []deps.ManifestParser {
	return []deps.ManifestParser{&GoModParser{}}
}
