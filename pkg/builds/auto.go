package builds

import "fmt"

// ResolveAutos replaces [Plus] and [Dot] steps with numbers. layerSpecs must
// be in layer panel order: each '+' or '.' is relative to the first step
// number of the nearest preceding layer which has one (0 if none does).
//
// Both ends of a range are resolved against the same number, so "<+-+>"
// is a single step. Tag references do not count as step numbers here.
func ResolveAutos(layerSpecs []Spec[InputAtom]) []Spec[AutoFreeAtom] {
	out := make([]Spec[AutoFreeAtom], len(layerSpecs))

	last := 0
	for i, spec := range layerSpecs {
		out[i] = mapSpec(spec, func(a InputAtom) AutoFreeAtom {
			return resolveAuto(a, last)
		})
		if n, ok := FirstNumber(out[i]); ok {
			last = n
		}
	}
	return out
}

func resolveAuto(a InputAtom, last int) AutoFreeAtom {
	switch a := a.(type) {
	case Auto:
		if a == Plus {
			return Number(last + 1)
		}
		return Number(last)
	case AutoFreeAtom:
		return a
	}
	panic(fmt.Sprintf("builds: unexpected atom %T", a))
}

// FirstNumber returns the first step number, by position rather than value,
// appearing in spec. For a range the start is used if it is a number,
// otherwise the end. Tags and bounds are skipped.
func FirstNumber(spec Spec[AutoFreeAtom]) (int, bool) {
	for _, step := range spec {
		for _, a := range step.Atoms() {
			if n, ok := a.(Number); ok {
				return int(n), true
			}
		}
	}
	return 0, false
}
