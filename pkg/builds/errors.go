package builds

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	serrors "github.com/matzehuels/slidie/pkg/errors"
)

// ErrParse is matched (via errors.Is) by every error reporting an annotation
// in a layer name which could not be parsed.
var ErrParse = errors.New("invalid build specification")

// InvalidStepError is returned when a step in a build specification is not
// valid.
type InvalidStepError struct {
	Token string // the offending step, as written
}

func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("invalid step %q", e.Token)
}

func (e *InvalidStepError) Is(target error) bool { return target == ErrParse }

// Code implements [serrors.Coder].
func (e *InvalidStepError) Code() serrors.Code { return serrors.ErrCodeInvalidStep }

// UnexpectedSuffixError is returned when a tag reference carries a suffix
// other than before, start, end or after.
type UnexpectedSuffixError struct {
	Token  string // the whole tag reference, e.g. "@foo.bar"
	Suffix string // the unrecognised suffix, e.g. "bar"
}

func (e *UnexpectedSuffixError) Error() string {
	return fmt.Sprintf("unexpected tag suffix %q in %q (expected before, start, end or after)", e.Suffix, e.Token)
}

func (e *UnexpectedSuffixError) Is(target error) bool { return target == ErrParse }

// Code implements [serrors.Coder].
func (e *UnexpectedSuffixError) Code() serrors.Code { return serrors.ErrCodeUnexpectedSuffix }

// LayerNameError attaches the layer a parse error was found in.
type LayerNameError struct {
	LayerIndex int
	LayerName  string
	Err        error
}

func (e *LayerNameError) Error() string {
	return fmt.Sprintf("layer %q: %v", e.LayerName, e.Err)
}

func (e *LayerNameError) Unwrap() error { return e.Err }

// IdentifierNotFoundError is returned when a build specification references
// a tag which no layer carries.
type IdentifierNotFoundError struct {
	Identifier string
	LayerIndex int

	// LayerName is filled in by Evaluate.
	LayerName string
}

func (e *IdentifierNotFoundError) Error() string {
	return fmt.Sprintf("unknown tag %q referenced by %s", e.Identifier, layerLabel(e.LayerIndex, e.LayerName))
}

// Code implements [serrors.Coder].
func (e *IdentifierNotFoundError) Code() serrors.Code { return serrors.ErrCodeUnknownTag }

// CyclicDependencyError is returned when layers depend on each other through
// tag references. LayerIndices lists the loop in dependency order, starting
// and ending with the same layer, e.g. [0 1 2 0].
type CyclicDependencyError struct {
	LayerIndices []int

	// LayerNames is filled in by Evaluate.
	LayerNames []string
}

func (e *CyclicDependencyError) Error() string {
	parts := make([]string, len(e.LayerIndices))
	for i, idx := range e.LayerIndices {
		name := ""
		if i < len(e.LayerNames) {
			name = e.LayerNames[i]
		}
		parts[i] = layerLabel(idx, name)
	}
	return "cyclic tag dependency: " + strings.Join(parts, " -> ")
}

// Code implements [serrors.Coder].
func (e *CyclicDependencyError) Code() serrors.Code { return serrors.ErrCodeCyclicDependency }

func layerLabel(index int, name string) string {
	if name == "" {
		return "layer " + strconv.Itoa(index)
	}
	return strconv.Quote(name)
}
