package cli

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidie/pkg/builds"
	"github.com/matzehuels/slidie/pkg/pipeline"
	"github.com/matzehuels/slidie/pkg/render"
)

// previewCommand creates the preview command for stepping through a deck.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <deck>",
		Short: "Step through the builds of a deck interactively",
		Long: `Step through the builds of a deck in the terminal, showing which layers
are visible at each step.

Keys: ←/→ to move between steps, t to jump to the next tag, home/end for
the first and last step, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Execute(ctx, pipeline.Options{
				Path:   args[0],
				Format: pipeline.FormatText,
				Logger: loggerFromContext(ctx),
			})
			if err != nil {
				return err
			}

			m := newPreviewModel(result.Deck.Name, result.Resolution)
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}
}

// previewModel is the bubbletea model of the preview command.
type previewModel struct {
	title string
	res   *builds.Resolution
	steps []int
	index int

	// tagStarts maps the first step of each tag to its tag names.
	tagStarts map[int][]string

	quitting bool
}

func newPreviewModel(title string, res *builds.Resolution) previewModel {
	starts := make(map[int][]string)
	for tag, steps := range res.TagSteps() {
		if len(steps) > 0 {
			starts[steps[0]] = append(starts[steps[0]], tag)
		}
	}
	for _, tags := range starts {
		sort.Strings(tags)
	}
	return previewModel{
		title:     title,
		res:       res,
		steps:     res.StepNumbers(),
		tagStarts: starts,
	}
}

func (m previewModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "right", "l", "n", " ":
		if m.index < len(m.steps)-1 {
			m.index++
		}
	case "left", "h", "p":
		if m.index > 0 {
			m.index--
		}
	case "home", "g":
		m.index = 0
	case "end", "G":
		m.index = len(m.steps) - 1
	case "t":
		m.index = m.nextTagIndex()
	}
	return m, nil
}

// nextTagIndex returns the index of the next step after the current one
// at which a tag starts, wrapping around. Returns the current index if no
// tag starts anywhere else.
func (m previewModel) nextTagIndex() int {
	for i := 1; i < len(m.steps); i++ {
		j := (m.index + i) % len(m.steps)
		if _, ok := m.tagStarts[m.steps[j]]; ok {
			return j
		}
	}
	return m.index
}

// step returns the step currently shown.
func (m previewModel) step() int {
	return m.steps[m.index]
}

var (
	previewVisible = lipgloss.NewStyle().Foreground(colorWhite)
	previewHidden  = lipgloss.NewStyle().Foreground(colorDim)
	previewAlways  = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
	previewTag     = lipgloss.NewStyle().Foreground(colorCyan)
)

// View implements tea.Model.
func (m previewModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	step := m.step()
	fmt.Fprintf(&b, "%s  %s\n\n",
		StyleTitle.Render(m.title),
		StyleDim.Render(fmt.Sprintf("step %d (%d/%d)", step, m.index+1, len(m.steps))))

	for _, l := range m.res.Layers {
		b.WriteString(m.layerLine(l, step))
		b.WriteByte('\n')
	}

	if tags := m.tagStarts[step]; len(tags) > 0 {
		fmt.Fprintf(&b, "\n%s %s\n", StyleDim.Render("starts:"), previewTag.Render("@"+strings.Join(tags, " @")))
	}

	b.WriteString("\n")
	b.WriteString(render.RenderText(m.res, render.WithTextColor(), render.WithTextCurrent(step)))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("←/→ step · t next tag · home/end first/last · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m previewModel) layerLine(l builds.Layer, step int) string {
	name := l.Name
	if name == "" {
		name = "(unnamed)"
	}
	switch {
	case !l.Constrained:
		return previewAlways.Render("  * " + name)
	case l.VisibleAt(step):
		line := "  ● " + name
		if slices.ContainsFunc(l.Tags, func(t string) bool { return slices.Contains(m.tagStarts[step], t) }) {
			return StyleHighlight.Render(line)
		}
		return previewVisible.Render(line)
	default:
		return previewHidden.Render("  ○ " + name)
	}
}
