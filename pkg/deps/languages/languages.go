// Package languages provides the complete list of supported ecosystems.
//
// This package exists to break import cycles: the individual language packages
// (python, rust, etc.) import pkg/deps, so pkg/deps cannot import them back.
// Instead, consumers that need the full language list import this package.
//
// Usage:
//
//	import "github.com/matzehuels/techradar/pkg/deps/languages"
//
//	reg := languages.Registry()
//	m, ok := reg.Route("services/api/go.mod")
package languages

import (
	"github.com/matzehuels/techradar/pkg/deps"
	"github.com/matzehuels/techradar/pkg/deps/cpp"
	"github.com/matzehuels/techradar/pkg/deps/csharp"
	"github.com/matzehuels/techradar/pkg/deps/golang"
	"github.com/matzehuels/techradar/pkg/deps/java"
	"github.com/matzehuels/techradar/pkg/deps/javascript"
	"github.com/matzehuels/techradar/pkg/deps/python"
	"github.com/matzehuels/techradar/pkg/deps/rust"
)

// All is the canonical list of supported ecosystems in routing priority
// order.
var All = []*deps.Language{
	javascript.Language,
	python.Language,
	java.Language,
	cpp.Language,
	golang.Language,
	rust.Language,
	csharp.Language,
}

// Find returns the Language with the given name, or nil if not found.
func Find(name string) *deps.Language {
	return deps.FindLanguage(name, All)
}

// Registry returns a registry over [All].
func Registry() *deps.Registry {
	return deps.NewRegistry(All...)
}
