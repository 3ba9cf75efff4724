// Package nodelink renders a technology radar as a node-link diagram.
//
// # Overview
//
// Each adoption stage becomes a Graphviz cluster. Inside a stage, every
// category is a node linked to the technologies filed under it, so the
// diagram reads left to right as stage, category, technology.
//
// # Usage
//
// Convert a matrix to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(m, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, technology labels list the package identifiers
//     that resolved to them, and removed identifiers are marked.
//
// Empty stages are omitted.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is required.
package nodelink
