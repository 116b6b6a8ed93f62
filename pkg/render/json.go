package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/slidie/pkg/builds"
	"github.com/matzehuels/slidie/pkg/deck"
)

// Report is the JSON form of an evaluated deck.
type Report struct {
	Deck   string           `json:"deck"`
	Steps  []int            `json:"steps"`
	Tags   map[string][]int `json:"tags"`
	Layers []LayerReport    `json:"layers"`
}

// LayerReport is the JSON form of one evaluated layer. Steps is nil for
// layers without a build specification.
type LayerReport struct {
	Name  string   `json:"name"`
	Steps []int    `json:"steps"`
	Tags  []string `json:"tags"`
}

// NewReport builds the report for d evaluated as res.
func NewReport(d *deck.Deck, res *builds.Resolution) Report {
	r := Report{
		Deck:   d.Name,
		Steps:  res.StepNumbers(),
		Tags:   res.TagSteps(),
		Layers: make([]LayerReport, len(res.Layers)),
	}
	for i, l := range res.Layers {
		lr := LayerReport{Name: l.Name, Tags: l.Tags}
		if l.Constrained {
			lr.Steps = l.Steps
		}
		r.Layers[i] = lr
	}
	return r
}

// RenderJSON returns the indented JSON report for d evaluated as res.
func RenderJSON(d *deck.Deck, res *builds.Resolution) ([]byte, error) {
	return json.MarshalIndent(NewReport(d, res), "", "  ")
}

// WriteJSON writes the JSON report for d evaluated as res to w.
func WriteJSON(w io.Writer, d *deck.Deck, res *builds.Resolution) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewReport(d, res)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
