package builds

import (
	"fmt"
	"slices"
)

// ReferencedTags returns the names of the tags referenced in spec, in order
// of appearance and without suffixes. Names may repeat.
func ReferencedTags[A InputAtom](spec Spec[A]) []string {
	var names []string
	for _, a := range flatten(spec) {
		if ref, ok := any(a).(TagRef); ok {
			names = append(names, ref.Name)
		}
	}
	return names
}

// ResolveTags replaces every tag reference in layerSpecs with the steps of
// the layers labelled with that tag. layerTags gives the labels of each
// layer, in the same order as layerSpecs.
//
// A bare reference expands to all of the referenced steps, which may be
// none or many. A suffixed reference resolves to at most one step (see
// [SuffixStep]). Inside a range the start defaults to the .start suffix and
// the end to .end; a range with either end resolving to nothing is dropped.
func ResolveTags(layerTags [][]string, layerSpecs []Spec[AutoFreeAtom]) ([]Spec[TagFreeAtom], error) {
	deps := make([]LayerDeps, len(layerSpecs))
	for i, spec := range layerSpecs {
		deps[i] = LayerDeps{Tags: layerTags[i], Deps: ReferencedTags(spec)}
	}
	order, err := ResolutionOrder(deps)
	if err != nil {
		return nil, err
	}

	// Steps of every layer carrying a tag, accumulated as layers resolve.
	pools := make(map[string]Spec[TagFreeAtom])

	out := make([]Spec[TagFreeAtom], len(layerSpecs))
	for _, i := range order {
		spec := Spec[TagFreeAtom]{}
		for _, step := range layerSpecs[i] {
			spec = append(spec, resolveStepTags(step, pools)...)
		}
		out[i] = spec
		for _, tag := range layerTags[i] {
			pools[tag] = append(pools[tag], spec...)
		}
	}
	return out, nil
}

func resolveStepTags(step Step[AutoFreeAtom], pools map[string]Spec[TagFreeAtom]) []Step[TagFreeAtom] {
	if step.IsRange {
		start, ok := resolveRangeEnd(step.Start, pools, SuffixStart)
		if !ok {
			return nil
		}
		end, ok := resolveRangeEnd(step.End, pools, SuffixEnd)
		if !ok {
			return nil
		}
		return []Step[TagFreeAtom]{Span(start, end)}
	}

	switch a := step.Start.(type) {
	case TagRef:
		if a.Suffix == NoSuffix {
			return slices.Clone(pools[a.Name])
		}
		if atom, ok := SuffixStep(pools[a.Name], a.Suffix); ok {
			return []Step[TagFreeAtom]{Single(atom)}
		}
		return nil
	case TagFreeAtom:
		return []Step[TagFreeAtom]{Single(a)}
	}
	panic(fmt.Sprintf("builds: unexpected atom %T", step.Start))
}

// resolveRangeEnd resolves one end of a range, applying suffix to a bare tag
// reference.
func resolveRangeEnd(a AutoFreeAtom, pools map[string]Spec[TagFreeAtom], suffix Suffix) (TagFreeAtom, bool) {
	switch a := a.(type) {
	case TagRef:
		if a.Suffix != NoSuffix {
			suffix = a.Suffix
		}
		return SuffixStep(pools[a.Name], suffix)
	case TagFreeAtom:
		return a, true
	}
	panic(fmt.Sprintf("builds: unexpected atom %T", a))
}

// SuffixStep picks the step a suffixed tag reference stands for from the
// referenced steps, with ranges contributing both of their ends:
//
//	start   the lowest step
//	end     the highest step
//	before  one less than the lowest step
//	after   one more than the highest step
//
// Bounds are never offset, so before and after leave [Start] or [End]
// unchanged. ok is false when referenced is empty.
func SuffixStep(referenced Spec[TagFreeAtom], suffix Suffix) (atom TagFreeAtom, ok bool) {
	atoms := flatten(referenced)
	if len(atoms) == 0 {
		return nil, false
	}
	lo := slices.MinFunc(atoms, compareAtoms)
	hi := slices.MaxFunc(atoms, compareAtoms)

	switch suffix {
	case SuffixStart:
		return lo, true
	case SuffixEnd:
		return hi, true
	case SuffixBefore:
		if n, isNum := lo.(Number); isNum {
			return n - 1, true
		}
		return lo, true
	case SuffixAfter:
		if n, isNum := hi.(Number); isNum {
			return n + 1, true
		}
		return hi, true
	}
	// The parser rejects every other suffix.
	panic(fmt.Sprintf("builds: unexpected suffix %q", suffix))
}
