// Package render turns evaluated builds into output for people and tools.
//
// # Overview
//
// Renderers take a [builds.Resolution], and for reports the [deck.Deck] it
// was evaluated from:
//
//   - [RenderJSON]: machine-readable report of steps, tags and layers
//   - [RenderText]: terminal table with one row per layer and one column
//     per step of the slide
//   - Dependency graphs of tag references (in [nodelink] subpackage)
//
// # JSON Report
//
//	{
//	  "deck": "intro",
//	  "steps": [0, 1, 2],
//	  "tags": {"intro": [1]},
//	  "layers": [
//	    {"name": "Background", "steps": null, "tags": []},
//	    {"name": "Intro <+> @intro", "steps": [1], "tags": ["intro"]}
//	  ]
//	}
//
// "steps" lists every step the slide is shown in. A layer's "steps" is null
// when the layer has no build specification and so is always visible, and an
// empty array when it never is.
//
// [builds.Resolution]: github.com/matzehuels/slidie/pkg/builds.Resolution
// [deck.Deck]: github.com/matzehuels/slidie/pkg/deck.Deck
// [nodelink]: github.com/matzehuels/slidie/pkg/render/nodelink
package render
