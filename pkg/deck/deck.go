package deck

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/slidie/pkg/errors"
)

// Deck is a named, ordered list of layer names.
type Deck struct {
	Name   string   `json:"name" toml:"name" yaml:"name"`
	Layers []string `json:"layers" toml:"layers" yaml:"layers"`
}

// Format is a deck file format.
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var extToFormat = map[string]Format{
	".txt":  FormatText,
	".json": FormatJSON,
	".toml": FormatTOML,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// FormatFromPath returns the format of a deck file from its extension,
// ignoring case.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extToFormat[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported deck format %q (want .txt, .json, .toml, .yaml or .yml)", ext)
}

// nameFromPath returns the file name of path without its extension.
func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
