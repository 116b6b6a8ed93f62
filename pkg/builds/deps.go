package builds

import "slices"

// DependencyEdge records that layer From references tag Tag, which layer To
// is labelled with.
type DependencyEdge struct {
	From int
	To   int
	Tag  string
}

// DependencyGraph is the tag reference structure of a slide.
type DependencyGraph struct {
	Layers []string   // layer names
	Tags   [][]string // tags of each layer
	Edges  []DependencyEdge
}

// Dependencies parses layerNames and returns which layers reference which
// others through tags, without resolving any steps. Cycles are not an error
// here so that they can be inspected. References to tags no layer carries
// are reported as an [*IdentifierNotFoundError].
func Dependencies(layerNames []string) (*DependencyGraph, error) {
	g := &DependencyGraph{
		Layers: slices.Clone(layerNames),
		Tags:   make([][]string, len(layerNames)),
	}

	refs := make([][]string, len(layerNames))
	for i, name := range layerNames {
		spec, _, err := ParseSpec(name)
		if err != nil {
			return nil, &LayerNameError{LayerIndex: i, LayerName: name, Err: err}
		}
		g.Tags[i] = ParseTags(name)
		refs[i] = slices.Compact(slices.Sorted(slices.Values(ReferencedTags(spec))))
	}

	tagged := make(map[string][]int)
	for i, tags := range g.Tags {
		for _, tag := range tags {
			tagged[tag] = append(tagged[tag], i)
		}
	}

	for from, tags := range refs {
		for _, tag := range tags {
			targets, ok := tagged[tag]
			if !ok {
				return nil, &IdentifierNotFoundError{Identifier: tag, LayerIndex: from, LayerName: layerNames[from]}
			}
			for _, to := range targets {
				g.Edges = append(g.Edges, DependencyEdge{From: from, To: to, Tag: tag})
			}
		}
	}
	return g, nil
}

// Order returns the resolution order of the graph's layers, as
// [ResolutionOrder] does, with layer names filled in on error.
func (g *DependencyGraph) Order() ([]int, error) {
	deps := make([]LayerDeps, len(g.Layers))
	for i := range g.Layers {
		deps[i].Tags = g.Tags[i]
	}
	for _, e := range g.Edges {
		deps[e.From].Deps = append(deps[e.From].Deps, e.Tag)
	}
	order, err := ResolutionOrder(deps)
	if err != nil {
		return nil, withLayerNames(err, g.Layers)
	}
	return order, nil
}
