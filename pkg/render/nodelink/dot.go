package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/slidie/pkg/builds"
)

// Options configures dependency diagram rendering.
type Options struct {
	// Detailed adds each layer's tags and resolved steps to its label.
	// Steps are only shown when Resolution is set.
	Detailed bool

	// Resolution, if set, provides the steps shown by Detailed labels.
	Resolution *builds.Resolution
}

// ToDOT converts a tag dependency graph to Graphviz DOT format. Each layer
// is a node and each edge points from a layer to a layer carrying a tag it
// references, labelled with the tag. The resulting DOT string can be
// rendered using [RenderSVG].
//
// Layers without a build specification are drawn with dashed outlines.
// Layers taking no part in any reference are still drawn.
func ToDOT(g *builds.DependencyGraph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11, fontcolor=gray30];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i, name := range g.Layers {
		label := fmtLabel(g, i, opts)
		attrs := fmtAttrs(name, label)
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(i), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %s -> %s [label=%q];\n", nodeID(e.From), nodeID(e.To), "@"+e.Tag)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeID names layers by index, since layer names need not be unique.
func nodeID(i int) string {
	return "L" + strconv.Itoa(i)
}

func fmtLabel(g *builds.DependencyGraph, i int, opts Options) string {
	name := g.Layers[i]
	if name == "" {
		name = fmt.Sprintf("(layer %d)", i)
	}
	if !opts.Detailed {
		return name
	}

	var parts []string
	if tags := g.Tags[i]; len(tags) > 0 {
		parts = append(parts, "tags: "+strings.Join(tags, ", "))
	}
	if res := opts.Resolution; res != nil && i < len(res.Layers) {
		l := res.Layers[i]
		switch {
		case !l.Constrained:
			parts = append(parts, "steps: all")
		case len(l.Steps) == 0:
			parts = append(parts, "steps: none")
		default:
			parts = append(parts, "steps: "+joinInts(l.Steps))
		}
	}
	if len(parts) == 0 {
		return name
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(name, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if _, ok, _ := builds.ParseSpec(name); !ok {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
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

// normalizeViewBox replaces the root element so the drawing scales from the
// origin with its natural size as width and height.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
