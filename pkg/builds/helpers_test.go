package builds

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mustSpec parses the build specification in a layer name, treating a name
// without one as "<->" like Evaluate does.
func mustSpec(t *testing.T, layer string) Spec[InputAtom] {
	t.Helper()
	s, ok, err := ParseSpec(layer)
	require.NoError(t, err)
	if !ok {
		return Spec[InputAtom]{Span[InputAtom](Start, End)}
	}
	return s
}

// mustSpecs parses every layer name with mustSpec.
func mustSpecs(t *testing.T, layers ...string) []Spec[InputAtom] {
	t.Helper()
	out := make([]Spec[InputAtom], len(layers))
	for i, l := range layers {
		out[i] = mustSpec(t, l)
	}
	return out
}

// narrow converts parsed specs to a later stage's atom type, failing the
// test if an atom does not belong to it.
func narrow[A InputAtom](t *testing.T, in []Spec[InputAtom]) []Spec[A] {
	t.Helper()
	out := make([]Spec[A], len(in))
	for i, s := range in {
		out[i] = mapSpec(s, func(a InputAtom) A {
			v, ok := a.(A)
			require.Truef(t, ok, "atom %v (%T) does not belong to this stage", a, a)
			return v
		})
	}
	return out
}

// numeric converts parsed specs made of numbers only to resolved specs.
func numeric(t *testing.T, in []Spec[InputAtom]) []Spec[int] {
	t.Helper()
	out := make([]Spec[int], len(in))
	for i, s := range in {
		out[i] = mapSpec(s, func(a InputAtom) int {
			n, ok := a.(Number)
			require.Truef(t, ok, "atom %v (%T) is not a number", a, a)
			return int(n)
		})
	}
	return out
}
