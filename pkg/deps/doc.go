// Package deps extracts raw dependency identifiers from manifest files.
//
// # Overview
//
// Techradar reads the manifests a repository already carries (package.json,
// go.mod, Cargo.toml, pom.xml, ...) and never talks to a package registry.
// This package provides the core abstractions; the per-ecosystem parsers live
// in subpackages and are collected by [languages].
//
// # Ecosystems
//
// Each subpackage exports a [Language] value naming its ecosystem and the
// [ManifestParser] implementations it provides:
//
//   - javascript: package.json
//   - python: requirements*.txt, setup.py, pyproject.toml, Pipfile
//   - java: pom.xml, build.gradle, build.gradle.kts
//   - cpp: CMakeLists.txt, conanfile.txt, conanfile.py, vcpkg.json
//   - golang: go.mod
//   - rust: Cargo.toml
//   - csharp: *.csproj, packages.config
//
// The ecosystem name doubles as the name of the technology mapping table
// the identifiers are resolved against.
//
// # Routing
//
// A [Registry] holds languages in priority order. [Registry.Route] returns
// the first parser whose filename rules match a path, so registry order
// breaks ties between ecosystems. Filename rules are either exact base names
// (compared case-insensitively) or glob patterns such as "*.csproj":
//
//	reg := deps.NewRegistry(languages.All...)
//	m, ok := reg.Route("web/package.json")
//	names := deps.Extract(m.Parser, m.Path, content, logger)
//
// # Failure Semantics
//
// Parsers return an error for content they cannot read at all. [Extract]
// absorbs that error, logs it, and yields an empty list, so one corrupt
// manifest never aborts a scan.
//
// [languages]: github.com/matzehuels/techradar/pkg/deps/languages
package deps
