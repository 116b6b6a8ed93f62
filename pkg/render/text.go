package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/slidie/pkg/builds"
)

const (
	markVisible       = "●"
	markUnconstrained = "*"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")
)

// TextOption configures text rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	color      bool
	current    int
	hasCurrent bool
}

// WithTextColor styles the table with terminal colors.
func WithTextColor() TextOption { return func(r *textRenderer) { r.color = true } }

// WithTextCurrent highlights the column of step. Only has an effect with
// [WithTextColor].
func WithTextCurrent(step int) TextOption {
	return func(r *textRenderer) { r.current, r.hasCurrent = step, true }
}

// highlighted reports whether the column of step is highlighted. Steps may
// be negative, so there is no sentinel for "none".
func (r textRenderer) highlighted(step int) bool {
	return r.color && r.hasCurrent && step == r.current
}

// RenderText renders res as a table: one row per layer and one column per
// step of the slide. A cell holds ● where the layer is visible. Layers
// without a build specification show * in every step.
func RenderText(res *builds.Resolution, opts ...TextOption) string {
	var r textRenderer
	for _, opt := range opts {
		opt(&r)
	}

	steps := res.StepNumbers()
	headers := []string{"Layer"}
	for _, s := range steps {
		headers = append(headers, strconv.Itoa(s))
	}

	rows := make([][]string, len(res.Layers))
	for i, l := range res.Layers {
		row := []string{l.Name}
		for _, s := range steps {
			switch {
			case !l.Constrained:
				row = append(row, markUnconstrained)
			case l.VisibleAt(s):
				row = append(row, markVisible)
			default:
				row = append(row, "")
			}
		}
		rows[i] = row
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	if r.color {
		headerStyle = headerStyle.Foreground(colorGray)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if col > 0 {
				base = base.Align(lipgloss.Center)
			}
			if row == -1 {
				return base.Inherit(headerStyle)
			}
			if col > 0 && r.highlighted(steps[col-1]) {
				return base.Foreground(colorCyan).Bold(true)
			}
			return base
		})
	if r.color {
		t = t.BorderStyle(lipgloss.NewStyle().Foreground(colorDim))
	}
	return t.Render()
}
