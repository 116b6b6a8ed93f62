package builds

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// specRe matches one bracketed build specification, including "<>".
	specRe = regexp.MustCompile(`<[^>]*>`)
	// nonEmptySpecRe matches the specifications stripped before scanning for
	// tag labels. An empty "<>" is left in place.
	nonEmptySpecRe = regexp.MustCompile(`<[^>]+>`)
	numberRe       = regexp.MustCompile(`^[0-9]+$`)
	// tagLabelRe excludes the same runes as isSpace; \s alone is ASCII only.
	tagLabelRe = regexp.MustCompile(`@([^\s\v\x1c-\x1f\x85\p{Z}<>.@]+)`)
)

// isSpace reports whether r separates words in a layer name. This is
// unicode.IsSpace plus the ASCII file, group, record and unit separators.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// isTagRef reports whether token is "@" followed by at least one
// non-space rune and no spaces.
func isTagRef(token string) bool {
	name, ok := strings.CutPrefix(token, "@")
	return ok && name != "" && strings.IndexFunc(name, isSpace) < 0
}

// ParseStep parses a single step such as "123", "+", ".", "@foo" or
// "@foo.start". Surrounding whitespace is ignored.
//
// An empty step parses as empty when empty is non-nil and is an
// [InvalidStepError] otherwise; range ends pass [Start] or [End] here.
func ParseStep(token string, empty InputAtom) (InputAtom, error) {
	token = strings.TrimFunc(token, isSpace)
	switch {
	case isTagRef(token):
		name, suffix, dotted := strings.Cut(token[1:], ".")
		if !dotted {
			return TagRef{Name: name}, nil
		}
		if !validSuffixes[Suffix(suffix)] {
			return nil, &UnexpectedSuffixError{Token: token, Suffix: suffix}
		}
		return TagRef{Name: name, Suffix: Suffix(suffix)}, nil
	case token == "+":
		return Plus, nil
	case token == ".":
		return Dot, nil
	case token == "" && empty != nil:
		return empty, nil
	case numberRe.MatchString(token):
		n, err := strconv.Atoi(token)
		if err != nil {
			return nil, &InvalidStepError{Token: token}
		}
		return Number(n), nil
	}
	return nil, &InvalidStepError{Token: token}
}

// ParseSpec parses every build specification within a layer name and
// concatenates their steps in order.
//
// ok is false when the name contains no specification at all, which is
// distinct from an empty one ("<>") yielding an empty spec.
func ParseSpec(layerName string) (spec Spec[InputAtom], ok bool, err error) {
	spec = Spec[InputAtom]{}
	for _, match := range specRe.FindAllString(layerName, -1) {
		ok = true

		body := strings.TrimFunc(match[1:len(match)-1], isSpace)
		if body == "" {
			continue
		}
		for _, piece := range strings.Split(body, ",") {
			step, err := parseStepOrRange(piece)
			if err != nil {
				return nil, false, err
			}
			spec = append(spec, step)
		}
	}
	if !ok {
		return nil, false, nil
	}
	return spec, true, nil
}

// parseStepOrRange parses one comma separated piece of a specification.
func parseStepOrRange(piece string) (Step[InputAtom], error) {
	left, right, isRange := strings.Cut(piece, "-")
	if !isRange {
		atom, err := ParseStep(piece, nil)
		if err != nil {
			return Step[InputAtom]{}, err
		}
		return Single(atom), nil
	}

	start, err := ParseStep(left, Start)
	if err != nil {
		return Step[InputAtom]{}, err
	}
	end, err := ParseStep(right, End)
	if err != nil {
		return Step[InputAtom]{}, err
	}
	return Span(start, end), nil
}

// ParseTags returns the tags a layer is labelled with, sorted. References
// to tags inside build specifications are not labels and are ignored.
func ParseTags(layerName string) []string {
	stripped := nonEmptySpecRe.ReplaceAllString(layerName, "")

	seen := make(map[string]bool)
	for _, m := range tagLabelRe.FindAllStringSubmatchIndex(stripped, -1) {
		if !endsLabel(stripped[m[1]:]) {
			continue
		}
		seen[stripped[m[2]:m[3]]] = true
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// endsLabel reports whether rest, the text following a candidate tag label,
// terminates it: end of string, whitespace or another label.
func endsLabel(rest string) bool {
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return r == '@' || isSpace(r)
}
