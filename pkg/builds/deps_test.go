package builds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencies(t *testing.T) {
	g, err := Dependencies(slide)
	require.NoError(t, err)

	assert.Equal(t, slide, g.Layers)
	assert.Equal(t, []string{"intro"}, g.Tags[1])
	assert.Equal(t, []DependencyEdge{
		{From: 4, To: 1, Tag: "intro"},
		{From: 5, To: 4, Tag: "hl"},
	}, g.Edges)

	order, err := g.Order()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, order)
}

func TestDependenciesSharedTag(t *testing.T) {
	g, err := Dependencies([]string{"<1> @a", "<2> @a", "<@a, @a.end>"})
	require.NoError(t, err)

	// Repeated references to a tag produce one edge per labelled layer.
	assert.Equal(t, []DependencyEdge{
		{From: 2, To: 0, Tag: "a"},
		{From: 2, To: 1, Tag: "a"},
	}, g.Edges)
}

func TestDependenciesCycle(t *testing.T) {
	layers := []string{"A <@b> @a", "B <@a> @b"}

	g, err := Dependencies(layers)
	require.NoError(t, err, "cycles are reported by Order, not Dependencies")
	assert.Len(t, g.Edges, 2)

	_, err = g.Order()
	var cyclic *CyclicDependencyError
	require.ErrorAs(t, err, &cyclic)
	assert.Equal(t, []int{0, 1, 0}, cyclic.LayerIndices)
	assert.Equal(t, []string{"A <@b> @a", "B <@a> @b", "A <@b> @a"}, cyclic.LayerNames)
}

func TestDependenciesErrors(t *testing.T) {
	t.Run("unknown tag", func(t *testing.T) {
		_, err := Dependencies([]string{"x <@nope>"})

		var notFound *IdentifierNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "nope", notFound.Identifier)
		assert.Equal(t, "x <@nope>", notFound.LayerName)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := Dependencies([]string{"x <@nope.middle>"})

		var suffixErr *UnexpectedSuffixError
		require.ErrorAs(t, err, &suffixErr)
		assert.Equal(t, "middle", suffixErr.Suffix)

		var layerErr *LayerNameError
		require.ErrorAs(t, err, &layerErr)
		assert.Equal(t, 0, layerErr.LayerIndex)
	})
}
