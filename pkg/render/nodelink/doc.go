// Package nodelink draws tag dependencies between layers as node-link
// diagrams.
//
// # Usage
//
// Build the dependency graph of a deck, convert it to DOT, then render to
// SVG:
//
//	g, err := builds.Dependencies(layerNames)
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Edges point from a layer to the layers it takes steps from (rankdir=BT),
// so layers which others build upon sit at the top.
//
// Cyclic references are drawn like any other: [builds.Dependencies] does
// not reject them, which makes this the tool for finding out why a deck
// fails to evaluate.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
//
// [builds.Dependencies]: github.com/matzehuels/slidie/pkg/builds.Dependencies
package nodelink
