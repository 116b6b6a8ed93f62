package builds

import "slices"

// ResolveRanges expands every range into the step numbers it covers. A range
// whose end is below its start covers nothing.
func ResolveRanges(layerSpecs []Spec[int]) [][]int {
	out := make([][]int, len(layerSpecs))
	for i, spec := range layerSpecs {
		steps := []int{}
		for _, s := range spec {
			if !s.IsRange {
				steps = append(steps, s.Start)
				continue
			}
			if s.End < s.Start {
				continue
			}
			for n := s.Start; ; n++ {
				steps = append(steps, n)
				if n == s.End {
					break
				}
			}
		}
		out[i] = steps
	}
	return out
}

// Normalize sorts and deduplicates the steps of every layer.
func Normalize(layerSteps [][]int) [][]int {
	out := make([][]int, len(layerSteps))
	for i, steps := range layerSteps {
		out[i] = NormalizeSteps(steps)
	}
	return out
}

// NormalizeSteps returns steps sorted in ascending order without duplicates.
// The result is never nil and steps is left unmodified.
func NormalizeSteps(steps []int) []int {
	out := append([]int{}, steps...)
	slices.Sort(out)
	return slices.Compact(out)
}
