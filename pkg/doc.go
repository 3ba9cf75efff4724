// Package pkg provides the core libraries for techradar.
//
// # Overview
//
// Techradar turns the dependency history of a git repository into a
// technology radar: technologies a project uses today are adopted, those it
// used in earlier revisions but dropped are removed. The pkg directory is
// organized into four areas:
//
//  1. Domain logic: [deps], [techmap], [history], [radar]
//  2. Infrastructure: [git], [clone], [cache], [store], [observability]
//  3. Orchestration: [pipeline]
//  4. Output: [render]
//
// # Architecture
//
// The typical data flow through techradar:
//
//	Working tree (local, or a sparse [clone])
//	         ↓
//	    [deps] package (route manifest files, extract package identifiers)
//	         ↓
//	    [history] package (identifiers at every commit touching a manifest)
//	         ↓
//	    [techmap] package (identifier → technology → category)
//	         ↓
//	    [radar] package (diff, aggregate, reconcile into a Matrix)
//	         ↓
//	    table / JSON / DOT / SVG output
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/techradar/pkg/deps/languages"
//	    "github.com/matzehuels/techradar/pkg/radar"
//	    "github.com/matzehuels/techradar/pkg/render"
//	    "github.com/matzehuels/techradar/pkg/techmap"
//	)
//
//	a := radar.New(techmap.MustDefault(), languages.Registry(), radar.Options{})
//	res, err := a.AnalyzeDir(context.Background(), ".")
//	if err != nil {
//	    return err
//	}
//	fmt.Print(render.Table(res.Matrix))
//
// # Main Packages
//
// [deps] - Manifest parsers for seven ecosystems (JavaScript, Python, Java,
// C/C++, Go, Rust, C#) behind a routing [deps.Registry]. Identifiers keep
// the ecosystem they came from.
//
// [techmap] - Ordered mapping tables from package patterns to technologies
// and categories, one per ecosystem, embedded as YAML.
//
// [history] - Reads a manifest at every commit that touched it, skipping
// commits whose objects a partial clone did not fetch.
//
// [radar] - The analyzer: current and historical identifiers in, adopted
// and removed technologies out.
//
// [pipeline] - Caching, cloning, persistence and rendering around the
// analyzer, shared by the CLI and the HTTP server.
package pkg
