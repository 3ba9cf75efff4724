package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/techradar/pkg/radar"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed lists package identifiers in technology labels.
	// When false, only the technology name is shown.
	Detailed bool
}

var stageColors = map[radar.Stage]string{
	radar.StageAssess: "#dbeafe",
	radar.StageTrial:  "#fef3c7",
	radar.StageAdopt:  "#dcfce7",
	radar.StageHold:   "#fde68a",
	radar.StageRemove: "#fee2e2",
}

// ToDOT converts a matrix to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(m radar.Matrix, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph radar {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")

	for _, stage := range radar.Stages {
		items := m.Stage(stage)
		if len(items) == 0 {
			continue
		}
		writeStage(&buf, stage, items, opts)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeStage(buf *bytes.Buffer, stage radar.Stage, items []radar.TechnologyItem, opts Options) {
	fmt.Fprintf(buf, "\n  subgraph %q {\n", "cluster_"+string(stage))
	fmt.Fprintf(buf, "    label=%q;\n", title(string(stage)))
	fmt.Fprintf(buf, "    style=\"rounded,filled\";\n    fillcolor=%q;\n", stageColors[stage])

	var categories []string
	seen := make(map[string]bool)
	for _, it := range items {
		if !seen[it.Category] {
			seen[it.Category] = true
			categories = append(categories, it.Category)
		}
	}
	for _, c := range categories {
		fmt.Fprintf(buf, "    %q [label=%q, shape=plaintext, style=\"\", fontcolor=\"#555555\"];\n", nodeID(stage, "category", c), c)
	}
	for _, it := range items {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(it, opts.Detailed))}
		if len(it.RemovedDependencies) > 0 {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"")
		}
		fmt.Fprintf(buf, "    %q [%s];\n", nodeID(stage, "tech", it.Name), strings.Join(attrs, ", "))
	}
	for _, it := range items {
		fmt.Fprintf(buf, "    %q -> %q;\n", nodeID(stage, "category", it.Category), nodeID(stage, "tech", it.Name))
	}
	buf.WriteString("  }\n")
}

func nodeID(stage radar.Stage, kind, name string) string {
	return string(stage) + "/" + kind + "/" + name
}

func fmtLabel(it radar.TechnologyItem, detailed bool) string {
	if !detailed {
		return it.Name
	}
	lines := []string{it.Name}
	lines = append(lines, it.Dependencies...)
	for _, d := range it.RemovedDependencies {
		lines = append(lines, "- "+d)
	}
	return strings.Join(lines, "\n")
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a
// viewBox anchored at the origin and pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
