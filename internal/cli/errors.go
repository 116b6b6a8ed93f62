package cli

import (
	"errors"

	"github.com/matzehuels/slidie/pkg/builds"
	serrors "github.com/matzehuels/slidie/pkg/errors"
)

// FormatError returns the one-line message shown for a failed command.
// Coded errors and layer name errors are shown without their code or the
// pipeline stage which wrapped them.
func FormatError(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch coded := e.(type) {
		case *serrors.Error:
			return serrors.UserMessage(coded)
		case *builds.LayerNameError, serrors.Coder:
			return e.Error()
		}
	}
	return err.Error()
}
