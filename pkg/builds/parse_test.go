package builds

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStep(t *testing.T) {
	tests := []struct {
		token string
		want  InputAtom
	}{
		{"0", Number(0)},
		{"123", Number(123)},
		{" 42 ", Number(42)},
		{"@foo", TagRef{Name: "foo"}},
		{"@foo.before", TagRef{Name: "foo", Suffix: SuffixBefore}},
		{"@foo.start", TagRef{Name: "foo", Suffix: SuffixStart}},
		{"@foo.end", TagRef{Name: "foo", Suffix: SuffixEnd}},
		{"@foo.after", TagRef{Name: "foo", Suffix: SuffixAfter}},
		{"+", Plus},
		{".", Dot},
		{"", Start},
		{"  ", Start},
		{"\v7\u00a0", Number(7)},
		{"\u3000@foo\x1f", TagRef{Name: "foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseStep(tt.token, Start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStepInvalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty without default", ""},
		{"bare at", "@"},
		{"space in name", "@ foo"},
		{"no-break space in name", "@foo\u00a0bar"},
		{"vertical tab in name", "@foo\vbar"},
		{"line separator in name", "@foo\u2028bar"},
		{"not a number", "fooA"},
		{"double plus", "++"},
		{"double dot", ".."},
		{"decimal", "1.2"},
		{"signed", "-1"},
		{"explicit plus sign", "+1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStep(tt.token, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)

			var invalid *InvalidStepError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.token, invalid.Token)
		})
	}
}

func TestParseStepUnexpectedSuffix(t *testing.T) {
	_, err := ParseStep("@foo.bar", nil)

	var suffixErr *UnexpectedSuffixError
	require.ErrorAs(t, err, &suffixErr)
	assert.Equal(t, "@foo.bar", suffixErr.Token)
	assert.Equal(t, "bar", suffixErr.Suffix)
	assert.ErrorIs(t, err, ErrParse)

	var invalid *InvalidStepError
	assert.False(t, errors.As(err, &invalid))
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name   string
		layer  string
		want   Spec[InputAtom]
		wantOK bool
	}{
		{"no spec", "foo", nil, false},
		{"empty name", "", nil, false},
		{"unclosed bracket", "foo <", nil, false},
		{"empty spec", "foo <>", Spec[InputAtom]{}, true},
		{"blank spec", "foo < >", Spec[InputAtom]{}, true},
		{"single", "foo <1>", Spec[InputAtom]{Single[InputAtom](Number(1))}, true},
		{
			"list",
			"foo <1,2,3>",
			Spec[InputAtom]{Single[InputAtom](Number(1)), Single[InputAtom](Number(2)), Single[InputAtom](Number(3))},
			true,
		},
		{
			"whitespace",
			"foo < 1 , 2 , 3 >",
			Spec[InputAtom]{Single[InputAtom](Number(1)), Single[InputAtom](Number(2)), Single[InputAtom](Number(3))},
			true,
		},
		{"range", "foo <1-2>", Spec[InputAtom]{Span[InputAtom](Number(1), Number(2))}, true},
		{"open end", "foo <1->", Spec[InputAtom]{Span[InputAtom](Number(1), End)}, true},
		{"open start", "foo <-2>", Spec[InputAtom]{Span[InputAtom](Start, Number(2))}, true},
		{"open both", "foo <->", Spec[InputAtom]{Span[InputAtom](Start, End)}, true},
		{"auto range", "<+->", Spec[InputAtom]{Span[InputAtom](Plus, End)}, true},
		{
			"tag range",
			"<@foo-@bar.end>",
			Spec[InputAtom]{Span[InputAtom](TagRef{Name: "foo"}, TagRef{Name: "bar", Suffix: SuffixEnd})},
			true,
		},
		{
			"multiple specs concatenate",
			"foo <1> <2,3>",
			Spec[InputAtom]{Single[InputAtom](Number(1)), Single[InputAtom](Number(2)), Single[InputAtom](Number(3))},
			true,
		},
		{
			"specs around tags",
			"<1> title @a <.>",
			Spec[InputAtom]{Single[InputAtom](Number(1)), Single[InputAtom](Dot)},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseSpec(tt.layer)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSpecErrors(t *testing.T) {
	tests := []struct {
		layer string
		token string
	}{
		{"foo <1,,2>", ""},
		{"foo <x>", "x"},
		{"foo <1-y>", "y"},
		{"foo <1> <z>", "z"},
	}

	for _, tt := range tests {
		t.Run(tt.layer, func(t *testing.T) {
			_, ok, err := ParseSpec(tt.layer)
			assert.False(t, ok)

			var invalid *InvalidStepError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.token, invalid.Token)
		})
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name  string
		layer string
		want  []string
	}{
		{"empty", "", []string{}},
		{"no tags", "foo", []string{}},
		{"reference is not a label", "foo <@foo>", []string{}},
		{"bare at", "foo @", []string{}},
		{"spaced at", "foo @ bar", []string{}},
		{"dotted", "foo @bar.baz", []string{}},
		{"single", "foo @bar", []string{"bar"}},
		{"followed by text", "foo @bar baz", []string{"bar"}},
		{"two", "foo @bar @baz", []string{"bar", "baz"}},
		{"adjacent", "foo @bar@baz", []string{"bar", "baz"}},
		{"sorted and deduplicated", "@b @a @b", []string{"a", "b"}},
		{"next to spec", "A <2> @foo", []string{"foo"}},
		{"label before spec", "@foo <@bar>", []string{"foo"}},
		{"ended by vertical tab", "@foo\vbar", []string{"foo"}},
		{"ended by no-break space", "@foo\u00a0bar", []string{"foo"}},
		{"ended by unit separator", "@foo\x1fbar", []string{"foo"}},
		{"ended by next line", "@foo\u0085bar", []string{"foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.layer))
		})
	}
}
