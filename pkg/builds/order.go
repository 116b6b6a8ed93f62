package builds

import (
	"maps"
	"slices"
)

// LayerDeps describes one layer for dependency ordering: the tags it is
// labelled with and the tags its build specification references.
type LayerDeps struct {
	Tags []string
	Deps []string
}

// ResolutionOrder returns layer indices ordered so that every layer comes
// after all layers carrying a tag it references. Each index appears exactly
// once.
//
// A referenced tag which no layer carries yields an
// [IdentifierNotFoundError]; layers which depend on themselves, directly or
// through other layers, yield a [CyclicDependencyError].
//
// The traversal is depth-first from each layer in index order, visiting
// dependencies in ascending index order, so the result depends only on the
// tags and references given.
func ResolutionOrder(layers []LayerDeps) ([]int, error) {
	tagToLayers := make(map[string]map[int]bool)
	for i, l := range layers {
		for _, tag := range l.Tags {
			if tagToLayers[tag] == nil {
				tagToLayers[tag] = make(map[int]bool)
			}
			tagToLayers[tag][i] = true
		}
	}

	edges := make([][]int, len(layers))
	for i, l := range layers {
		deps := make(map[int]bool)
		for _, tag := range slices.Sorted(slices.Values(l.Deps)) {
			indices, ok := tagToLayers[tag]
			if !ok {
				return nil, &IdentifierNotFoundError{Identifier: tag, LayerIndex: i}
			}
			maps.Copy(deps, indices)
		}
		edges[i] = slices.Sorted(maps.Keys(deps))
	}

	o := orderer{
		edges:   edges,
		done:    make([]bool, len(layers)),
		onPath:  make([]bool, len(layers)),
		ordered: make([]int, 0, len(layers)),
	}
	for i := range layers {
		if err := o.visit(i); err != nil {
			return nil, err
		}
	}
	return o.ordered, nil
}

// orderer carries the state of one depth-first traversal. path is the chain
// of layers currently being visited, which is what a cycle is reported as.
type orderer struct {
	edges   [][]int
	done    []bool
	onPath  []bool
	path    []int
	ordered []int
}

func (o *orderer) visit(i int) error {
	if o.done[i] {
		return nil
	}
	if o.onPath[i] {
		start := slices.Index(o.path, i)
		loop := append(slices.Clone(o.path[start:]), i)
		return &CyclicDependencyError{LayerIndices: loop}
	}

	o.onPath[i] = true
	o.path = append(o.path, i)
	for _, dep := range o.edges[i] {
		if err := o.visit(dep); err != nil {
			return err
		}
	}
	o.path = o.path[:len(o.path)-1]
	o.onPath[i] = false

	o.done[i] = true
	o.ordered = append(o.ordered, i)
	return nil
}
