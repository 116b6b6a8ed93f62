package builds

import (
	"cmp"
	"fmt"
	"strconv"
)

// InputAtom is any atom which may appear in a freshly parsed specification:
// a [Number], an [Auto] marker, a [TagRef] or a [Bound].
type InputAtom interface {
	inputAtom()
	String() string
}

// AutoFreeAtom is an atom left after automatic numbering has been resolved:
// a [Number], a [TagRef] or a [Bound].
type AutoFreeAtom interface {
	InputAtom
	autoFreeAtom()
}

// TagFreeAtom is an atom left after tag references have been resolved:
// a [Number] or a [Bound].
type TagFreeAtom interface {
	AutoFreeAtom
	tagFreeAtom()
}

// Number is a literal step number.
type Number int

// Auto is an automatically numbered step.
type Auto int

const (
	// Plus ('+') is one more than the previous layer's first step number.
	Plus Auto = iota
	// Dot ('.') is the previous layer's first step number.
	Dot
)

// Bound refers to the first or last step used anywhere on a slide.
type Bound int

const (
	// Start sorts before every step number.
	Start Bound = iota
	// End sorts after every step number.
	End
)

// Suffix selects a single step from the steps of a referenced tag.
type Suffix string

const (
	NoSuffix     Suffix = ""
	SuffixBefore Suffix = "before"
	SuffixStart  Suffix = "start"
	SuffixEnd    Suffix = "end"
	SuffixAfter  Suffix = "after"
)

// validSuffixes lists the suffixes accepted after a tag reference.
var validSuffixes = map[Suffix]bool{
	SuffixBefore: true,
	SuffixStart:  true,
	SuffixEnd:    true,
	SuffixAfter:  true,
}

// TagRef references the steps of every layer labelled with tag Name. With
// NoSuffix it stands for all of those steps, otherwise for just one of them.
type TagRef struct {
	Name   string
	Suffix Suffix
}

func (Number) inputAtom() {}
func (Number) autoFreeAtom() {}
func (Number) tagFreeAtom() {}

func (Auto) inputAtom() {}

func (TagRef) inputAtom() {}
func (TagRef) autoFreeAtom() {}

func (Bound) inputAtom() {}
func (Bound) autoFreeAtom() {}
func (Bound) tagFreeAtom() {}

func (n Number) String() string { return strconv.Itoa(int(n)) }

func (a Auto) String() string {
	if a == Dot {
		return "."
	}
	return "+"
}

// String renders a bound as the empty range end it is written as.
func (b Bound) String() string { return "" }

func (t TagRef) String() string {
	if t.Suffix == NoSuffix {
		return "@" + t.Name
	}
	return "@" + t.Name + "." + string(t.Suffix)
}

// Step is either a single atom or an inclusive range between two atoms. The
// type parameter fixes which atoms may appear, and so which resolution stage
// the step belongs to.
type Step[A any] struct {
	Start   A
	End     A // unset unless IsRange
	IsRange bool
}

// Single returns a step made of one atom.
func Single[A any](a A) Step[A] {
	return Step[A]{Start: a}
}

// Span returns the inclusive range step from start to end.
func Span[A any](start, end A) Step[A] {
	return Step[A]{Start: start, End: end, IsRange: true}
}

// Atoms returns the atoms making up the step: both ends of a range, or the
// single atom otherwise.
func (s Step[A]) Atoms() []A {
	if s.IsRange {
		return []A{s.Start, s.End}
	}
	return []A{s.Start}
}

func (s Step[A]) String() string {
	if s.IsRange {
		return fmt.Sprintf("%v-%v", s.Start, s.End)
	}
	return fmt.Sprint(s.Start)
}

// Spec is the list of steps during which a layer is visible.
type Spec[A any] []Step[A]

// mapStep applies f to every atom of s, preserving its shape.
func mapStep[A, B any](s Step[A], f func(A) B) Step[B] {
	if s.IsRange {
		return Span(f(s.Start), f(s.End))
	}
	return Single(f(s.Start))
}

// mapSpec applies mapStep to every step of spec.
func mapSpec[A, B any](spec Spec[A], f func(A) B) Spec[B] {
	out := make(Spec[B], len(spec))
	for i, s := range spec {
		out[i] = mapStep(s, f)
	}
	return out
}

// flatten returns every atom of every step of spec, ranges contributing both
// of their ends.
func flatten[A any](spec Spec[A]) []A {
	var out []A
	for _, s := range spec {
		out = append(out, s.Atoms()...)
	}
	return out
}

// compareAtoms orders tag-free atoms: Start first, then numbers, then End.
func compareAtoms(a, b TagFreeAtom) int {
	ra, va := atomRank(a)
	rb, vb := atomRank(b)
	if c := cmp.Compare(ra, rb); c != 0 {
		return c
	}
	return cmp.Compare(va, vb)
}

func atomRank(a TagFreeAtom) (rank, value int) {
	switch a := a.(type) {
	case Bound:
		if a == Start {
			return 0, 0
		}
		return 2, 0
	case Number:
		return 1, int(a)
	}
	panic(fmt.Sprintf("builds: unexpected atom %T", a))
}
