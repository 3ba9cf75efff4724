package java

import "github.com/matzehuels/techradar/pkg/deps"

// Language covers Maven and Gradle builds.
var Language = &deps.Language{
	Name:            "java",
	Title:           "Java",
	ManifestParsers: manifestParsers,
}

func manifestParsers() []deps.ManifestParser {
	return []deps.ManifestParser{&POMParser{}, &GradleParser{}}
}
