package csharp

import "github.com/matzehuels/techradar/pkg/deps"

// Language covers .NET projects restored from NuGet.
var Language = &deps.Language{
	Name:            "csharp",
	Title:           "C#",
	ManifestParsers: manifestParsers,
}

func manifestParsers() []deps.ManifestParser {
	return []deps.ManifestParser{&ProjectFile{}, &PackagesConfig{}}
}
