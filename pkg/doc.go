// Package pkg provides the libraries behind slidie, which resolves the build
// steps of slide layers.
//
// # Overview
//
// A slide's layers carry annotations in their names: "Bullet <2-4>" is
// visible at steps 2 to 4, "Intro <+> @intro" at the step after the
// previous layer's and tagged "intro", "Detail <@intro.after->" from the
// step after the intro until the end. The packages are:
//
//  1. [builds] - Annotation parser and step resolver (the core)
//  2. [deck] - Deck files: ordered layer names as text, JSON, TOML or YAML
//  3. [render] - JSON reports, text tables and dependency graphs
//  4. [pipeline] - Orchestration (load → evaluate → render) with caching
//  5. [cache] - Rendered output cache
//  6. [errors] - Coded errors
//  7. [observability] - Hooks for pipeline and cache events
//
// # Architecture
//
// The typical data flow:
//
//	Deck file
//	    ↓
//	[deck] package (read layer names)
//	    ↓
//	[builds] package (parse, autos → tags → bounds → ranges)
//	    ↓
//	[render] package (report, table or graph)
//	    ↓
//	text/JSON/DOT/SVG output
//
// # Quick Start
//
//	res, err := builds.Evaluate([]string{
//	    "Background",
//	    "Intro <+> @intro",
//	    "Detail <@intro.after->",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, l := range res.Layers {
//	    fmt.Println(l.Name, l.Steps)
//	}
//
// [builds] is a pure function of the layer names and may be used on its
// own; the other packages exist for the slidie CLI.
//
// [builds]: https://pkg.go.dev/github.com/matzehuels/slidie/pkg/builds
// [deck]: https://pkg.go.dev/github.com/matzehuels/slidie/pkg/deck
// [render]: https://pkg.go.dev/github.com/matzehuels/slidie/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/slidie/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/slidie/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/slidie/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/slidie/pkg/observability
package pkg
