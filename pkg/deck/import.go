package deck

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/slidie/pkg/errors"
)

// Read decodes a deck in format f from r.
//
// JSON input may also be a bare array of layer names, in which case the
// deck has no name. Read does not close r. Decoding failures are reported
// with code INVALID_FORMAT.
func Read(r io.Reader, f Format) (*Deck, error) {
	var (
		d   *Deck
		err error
	)
	switch f {
	case FormatText:
		d, err = readText(r)
	case FormatJSON:
		d, err = readJSON(r)
	case FormatTOML:
		d = &Deck{}
		_, err = toml.NewDecoder(r).Decode(d)
	case FormatYAML:
		d = &Deck{}
		err = yaml.NewDecoder(r).Decode(d)
		if err == io.EOF {
			err = nil
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported deck format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s deck", f)
	}
	if d.Layers == nil {
		d.Layers = []string{}
	}
	return d, nil
}

func readText(r io.Reader) (*Deck, error) {
	d := &Deck{Layers: []string{}}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		d.Layers = append(d.Layers, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

func readJSON(r io.Reader) (*Deck, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var layers []string
	if err := json.Unmarshal(data, &layers); err == nil {
		return &Deck{Layers: layers}, nil
	}

	var d Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads the deck file at path, choosing the format from its extension.
// A deck without a name is named after the file.
func Load(path string) (*Deck, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "deck %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	d, err := Read(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = nameFromPath(path)
	}
	return d, nil
}
