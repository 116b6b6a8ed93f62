// Package deck reads and writes decks: the ordered layer names of a slide.
//
// # Overview
//
// A deck is what the build resolver in [builds] consumes. It is normally
// extracted from a drawing by some other tool and saved in one of several
// simple file formats, chosen by file extension:
//
//	.txt          one layer name per line, top of the layer panel first
//	.json         {"name": "...", "layers": ["...", ...]} or a bare array
//	.toml         name = "..." and layers = [...]
//	.yaml, .yml   name: ... and layers: [...]
//
// Text decks keep every line verbatim apart from a trailing carriage
// return, so a blank line is a layer with an empty name. A deck without a
// name is named after its file.
//
// # Import
//
// Use [Load] to read a deck from a file path, or [Read] to read from any
// io.Reader in a given [Format]:
//
//	d, err := deck.Load("slide.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Missing files are reported with code FILE_NOT_FOUND and unsupported
// extensions or undecodable content with INVALID_FORMAT, see [errors].
//
// # Export
//
// Use [Save] to write a deck to a file, or [Write] to write to any
// io.Writer. Writing then reading a deck yields the same layers in every
// format; text files do not store the deck name.
//
// [builds]: github.com/matzehuels/slidie/pkg/builds
// [errors]: github.com/matzehuels/slidie/pkg/errors
package deck
