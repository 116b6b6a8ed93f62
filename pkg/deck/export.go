package deck

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/slidie/pkg/errors"
)

// Write encodes d in format f and writes it to w.
// The output can be read back with [Read].
func Write(d *Deck, w io.Writer, f Format) error {
	var err error
	switch f {
	case FormatText:
		for _, l := range d.Layers {
			if _, err = fmt.Fprintln(w, l); err != nil {
				break
			}
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(d)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(d); err == nil {
			err = enc.Close()
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported deck format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Save writes d to a file at path in the format matching its extension.
func Save(d *Deck, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return writeAndClose(d, file, f)
}

// writeAndClose writes d to w and closes it. A failed close is reported when
// the write succeeded, since buffered data may not have reached the file.
func writeAndClose(d *Deck, w io.WriteCloser, f Format) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()
	return Write(d, w, f)
}
