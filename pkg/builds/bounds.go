package builds

import "fmt"

// ResolveBounds replaces [Start] with the lowest and [End] with the highest
// step number appearing in any layer. Step 0 always counts, so a slide has
// well defined bounds even when no layer names a number.
func ResolveBounds(layerSpecs []Spec[TagFreeAtom]) []Spec[int] {
	lo, hi := StepBounds(layerSpecs)

	out := make([]Spec[int], len(layerSpecs))
	for i, spec := range layerSpecs {
		out[i] = mapSpec(spec, func(a TagFreeAtom) int {
			switch a := a.(type) {
			case Number:
				return int(a)
			case Bound:
				if a == Start {
					return lo
				}
				return hi
			}
			panic(fmt.Sprintf("builds: unexpected atom %T", a))
		})
	}
	return out
}

// StepBounds returns the lowest and highest step numbers in layerSpecs,
// counting range ends and step 0.
func StepBounds(layerSpecs []Spec[TagFreeAtom]) (lo, hi int) {
	for _, spec := range layerSpecs {
		for _, a := range flatten(spec) {
			if n, ok := a.(Number); ok {
				lo = min(lo, int(n))
				hi = max(hi, int(n))
			}
		}
	}
	return lo, hi
}
