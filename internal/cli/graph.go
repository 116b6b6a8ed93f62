package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidie/pkg/pipeline"
)

// graphOptions holds the flags of the graph command.
type graphOptions struct {
	format   string
	output   string
	detailed bool
	noCache  bool
	refresh  bool
}

// graphCommand creates the graph command for drawing tag references.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOptions

	cmd := &cobra.Command{
		Use:   "graph <deck>",
		Short: "Draw which layers take their steps from which tags",
		Long: `Draw the tag references of a deck as a graph: one node per layer and an
edge from every layer referencing a tag to each layer carrying it.

Decks whose tags reference each other in a cycle are drawn too, which
helps to find the cycle.`,
		Example: `  # Print Graphviz DOT
  slidie graph slide.txt

  # Render SVG with tags and steps in the node labels
  slidie graph slide.txt --format svg --detailed -o slide.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot or svg (default: from -o extension, else dot)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show tags and steps in node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the output cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached output")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, path string, opts graphOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	format := graphFormat(opts.format, opts.output)
	if format != pipeline.FormatDOT && format != pipeline.FormatSVG {
		return fmt.Errorf("invalid format %q (must be dot or svg)", format)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if format == pipeline.FormatSVG {
		spinner = newSpinner(ctx, "Rendering SVG...")
		spinner.Start()
		defer spinner.Stop()
	}

	result, err := runner.Execute(ctx, pipeline.Options{
		Path:     path,
		Format:   format,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
		Logger:   logger,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	if result.Resolution == nil {
		printWarning("Tags of %s reference each other in a cycle", result.Deck.Name)
	}

	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(result.Output)
		return err
	}

	if err := os.WriteFile(opts.output, result.Output, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	printSuccess("Drew %s", plural(len(result.Graph.Edges), "reference"))
	printFile(opts.output)
	if format == pipeline.FormatDOT {
		printNextStep("Render with", "dot -Tpng "+opts.output)
	}
	return nil
}

// graphFormat returns the explicit format, or else the one implied by the
// output file's extension, or else dot.
func graphFormat(format, output string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".svg":
		return pipeline.FormatSVG
	default:
		return pipeline.FormatDOT
	}
}
