package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/slidie/pkg/render"
	"github.com/matzehuels/slidie/pkg/render/nodelink"
)

// Render produces the output of an evaluated deck in opts.Format. Graph
// formats need result.Graph; the others need result.Resolution.
func Render(ctx context.Context, result *Result, opts Options) ([]byte, error) {
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}

	if opts.IsGraph() {
		if result.Graph == nil {
			return nil, fmt.Errorf("%s output needs a dependency graph", opts.Format)
		}
		dot := nodelink.ToDOT(result.Graph, nodelink.Options{
			Detailed:   opts.Detailed,
			Resolution: result.Resolution,
		})
		if opts.Format == FormatDOT {
			return []byte(dot), nil
		}
		return nodelink.RenderSVG(ctx, dot)
	}

	if result.Resolution == nil {
		return nil, fmt.Errorf("%s output needs an evaluated deck", opts.Format)
	}
	switch opts.Format {
	case FormatJSON:
		return render.RenderJSON(result.Deck, result.Resolution)
	default:
		var textOpts []render.TextOption
		if opts.Color {
			textOpts = append(textOpts, render.WithTextColor())
		}
		return []byte(render.RenderText(result.Resolution, textOpts...) + "\n"), nil
	}
}
