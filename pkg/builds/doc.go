// Package builds parses and evaluates slide build specifications: the
// annotations on layer names which control at which steps of a slide each
// layer is visible.
//
// # Syntax
//
// Build specifications are written in angle brackets anywhere within a layer
// name and hold a comma separated list of steps during which the layer is
// visible. Given the layers
//
//	A
//	B <1>
//	C <2>
//	D <1, 2>
//
// the slide builds in three steps: only A is visible at step 0, A, B and D at
// step 1, and A, C and D at step 2. Layers with no brackets at all are never
// hidden by the build.
//
// Steps may be:
//
//	123          a step number
//	3-5          an inclusive range; "2-" runs to the last step, "-2" from the first
//	+            one more than the first step number of the previous layer
//	.            the same as the first step number of the previous layer
//	@foo         every step of the layers tagged @foo
//	@foo.start   the first step of the layers tagged @foo (also .end, .before, .after)
//
// A layer is tagged by writing @name in its name outside any brackets. Many
// layers may share a tag, in which case a reference to it means the union of
// their steps. Inside a range a bare tag implies .start on the left and .end
// on the right, so <@foo-@bar> reads as <@foo.start-@bar.end>.
//
// # Resolution
//
// [Evaluate] resolves specifications in four stages, each with its own atom
// type so that stages cannot be applied out of order:
//
//  1. [ResolveAutos] replaces + and . with numbers ([InputAtom] to [AutoFreeAtom]).
//  2. [ResolveTags] replaces tag references with the steps of the tagged
//     layers ([AutoFreeAtom] to [TagFreeAtom]), in the order given by
//     [ResolutionOrder]. Circular references are rejected.
//  3. [ResolveBounds] replaces [Start] and [End] with the lowest and highest
//     step number used anywhere on the slide (always including 0).
//  4. [ResolveRanges] expands ranges into plain step numbers, which
//     [Normalize] then sorts and deduplicates.
//
// Automatic numbering ignores tag references entirely since it runs before
// tags are resolved: in
//
//	A <1> @foo
//	B <@foo, 2>
//	C <.>
//
// layer C resolves to step 2, not 1.
//
// Everything in this package is a pure function of its input and is safe for
// concurrent use.
package builds
