package cli

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed syntax.md
var syntaxGuide string

// syntaxCommand creates the syntax command which explains build annotations.
func (c *CLI) syntaxCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "syntax",
		Short: "Explain the build annotations of layer names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if raw || !isTerminal(out) {
				_, err := fmt.Fprint(out, syntaxGuide)
				return err
			}
			rendered, err := renderMarkdown(syntaxGuide, glamour.WithAutoStyle())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the guide as markdown")

	return cmd
}

// renderMarkdown renders md for the terminal with the given style.
func renderMarkdown(md string, style glamour.TermRendererOption) (string, error) {
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(md)
}
