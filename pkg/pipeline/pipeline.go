// Package pipeline runs the load → evaluate → render pipeline for slidie.
//
// This package is what the CLI commands share: it reads a deck, resolves the
// build steps of its layers and renders the result in one of several
// formats, logging each stage with its duration.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the deck file (text, JSON, TOML or YAML)
//  2. Evaluate: Resolve every layer's steps with [builds.Evaluate]
//  3. Render: Produce text, JSON, DOT or SVG output
//
// Rendered output is cached by the runner's [cache.Cache], keyed by the
// deck's layer names and the render options. Loading and evaluation always
// run, so [Result] is complete on a cache hit too.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:   "slide.txt",
//	    Format: pipeline.FormatJSON,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
//
// # Cyclic decks
//
// The graph formats (dot and svg) exist to debug tag references, so a deck
// whose tags form a cycle still renders in them: the cycle is logged as a
// warning and [Result.Resolution] is nil. In every other format the cycle is
// an error.
//
// [builds.Evaluate]: github.com/matzehuels/slidie/pkg/builds.Evaluate
// [cache.Cache]: github.com/matzehuels/slidie/pkg/cache.Cache
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slidie/pkg/builds"
	"github.com/matzehuels/slidie/pkg/deck"
	"github.com/matzehuels/slidie/pkg/errors"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// DefaultFormat is the output format used when none is given.
const DefaultFormat = FormatText

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Path is the deck file to load. Ignored when Deck is set.
	Path string

	// Deck is an already loaded deck.
	Deck *deck.Deck

	// Format is one of the Format constants.
	Format string

	// Color styles text output for a terminal.
	Color bool

	// Detailed adds tags and steps to graph node labels.
	Detailed bool

	// Refresh ignores cached output, replacing it with a fresh render.
	Refresh bool

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Deck *deck.Deck

	// Resolution is nil only for graph formats of cyclic decks.
	Resolution *builds.Resolution

	// Graph is the tag dependency graph, set for graph formats.
	Graph *builds.DependencyGraph

	Output []byte
	Stats  Stats

	// Cached reports whether Output came from the cache.
	Cached bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LayerCount   int
	StepCount    int
	TagCount     int
	LoadTime     time.Duration
	EvaluateTime time.Duration
	RenderTime   time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: text, json, dot, svg)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Deck == nil && o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "deck path is required")
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormat(o.Format)
}

// IsGraph reports whether the output is a dependency graph.
func (o *Options) IsGraph() bool {
	return o.Format == FormatDOT || o.Format == FormatSVG
}
