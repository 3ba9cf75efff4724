// Package render produces the output formats of a technology radar.
//
// # Formats
//
//   - [FormatTable]: one bordered terminal table per non-empty stage
//   - [FormatJSON]: the matrix as indented JSON
//   - [FormatDOT]: Graphviz source from the [nodelink] subpackage
//   - [FormatSVG]: the DOT diagram rendered in-process
//
// [Render] dispatches on the format name:
//
//	svg, err := render.Render(ctx, matrix, render.FormatSVG)
//
// [nodelink]: github.com/matzehuels/techradar/pkg/render/nodelink
package render
