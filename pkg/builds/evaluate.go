package builds

import (
	"errors"
	"slices"
)

// Layer is the evaluated build of one layer.
type Layer struct {
	Name string

	// Steps lists the steps the layer is visible in, ascending. It is nil
	// when Constrained is false and may be empty (but non-nil) otherwise.
	Steps []int

	// Constrained is false for layers without any build specification.
	// Such layers take no part in the build and are always visible.
	Constrained bool

	// Tags are the tags the layer is labelled with, sorted.
	Tags []string
}

// VisibleAt reports whether the layer is visible at step.
func (l Layer) VisibleAt(step int) bool {
	if !l.Constrained {
		return true
	}
	_, found := slices.BinarySearch(l.Steps, step)
	return found
}

// HasTag reports whether the layer is labelled with tag.
func (l Layer) HasTag(tag string) bool {
	_, found := slices.BinarySearch(l.Tags, tag)
	return found
}

// Resolution is the evaluated build of a slide, one [Layer] per input layer
// name in the same order.
type Resolution struct {
	Layers []Layer
}

// Evaluate parses the build specifications and tags in layerNames, given in
// layer panel order (top to bottom), and resolves the steps at which each
// layer is visible.
//
// Internally, layers without a build specification are treated as "<->",
// i.e. visible throughout, so that other layers may reference their tags.
// They are still reported as unconstrained.
//
// Parse errors are returned as a [*LayerNameError]. Tag errors are returned
// as [*IdentifierNotFoundError] or [*CyclicDependencyError] with their layer
// names filled in. No partial result is returned on error.
func Evaluate(layerNames []string) (*Resolution, error) {
	inputs := make([]Spec[InputAtom], len(layerNames))
	constrained := make([]bool, len(layerNames))
	tags := make([][]string, len(layerNames))
	for i, name := range layerNames {
		spec, ok, err := ParseSpec(name)
		if err != nil {
			return nil, &LayerNameError{LayerIndex: i, LayerName: name, Err: err}
		}
		if !ok {
			spec = Spec[InputAtom]{Span[InputAtom](Start, End)}
		}
		inputs[i] = spec
		constrained[i] = ok
		tags[i] = ParseTags(name)
	}

	s1 := ResolveAutos(inputs)
	s2, err := ResolveTags(tags, s1)
	if err != nil {
		return nil, withLayerNames(err, layerNames)
	}
	s3 := ResolveBounds(s2)
	steps := Normalize(ResolveRanges(s3))

	res := &Resolution{Layers: make([]Layer, len(layerNames))}
	for i, name := range layerNames {
		l := Layer{Name: name, Constrained: constrained[i], Tags: tags[i]}
		if l.Constrained {
			l.Steps = steps[i]
		}
		res.Layers[i] = l
	}
	return res, nil
}

// withLayerNames fills in the layer names of tag resolution errors.
func withLayerNames(err error, layerNames []string) error {
	var notFound *IdentifierNotFoundError
	if errors.As(err, &notFound) {
		notFound.LayerName = layerNames[notFound.LayerIndex]
		return notFound
	}
	var cyclic *CyclicDependencyError
	if errors.As(err, &cyclic) {
		cyclic.LayerNames = make([]string, len(cyclic.LayerIndices))
		for i, idx := range cyclic.LayerIndices {
			cyclic.LayerNames[i] = layerNames[idx]
		}
		return cyclic
	}
	return err
}

// StepNumbers returns every step the slide must be shown in, ascending: the
// steps of all constrained layers plus step 0.
func (r *Resolution) StepNumbers() []int {
	all := []int{0}
	for _, l := range r.Layers {
		all = append(all, l.Steps...)
	}
	return NormalizeSteps(all)
}

// TagSteps maps every tag to the steps in which at least one layer carrying
// it is visible. Unconstrained layers count as visible in every step.
func (r *Resolution) TagSteps() map[string][]int {
	steps := r.StepNumbers()

	out := make(map[string][]int)
	for _, l := range r.Layers {
		layerSteps := l.Steps
		if !l.Constrained {
			layerSteps = steps
		}
		for _, tag := range l.Tags {
			out[tag] = append(out[tag], layerSteps...)
		}
	}
	for tag, s := range out {
		out[tag] = NormalizeSteps(s)
	}
	return out
}

// VisibleAt returns the indices of the layers visible at step.
func (r *Resolution) VisibleAt(step int) []int {
	var visible []int
	for i, l := range r.Layers {
		if l.VisibleAt(step) {
			visible = append(visible, i)
		}
	}
	return visible
}
