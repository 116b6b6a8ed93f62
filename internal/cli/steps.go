package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidie/pkg/pipeline"
)

// stepsOptions holds the flags of the steps command.
type stepsOptions struct {
	format  string
	output  string
	noColor bool
	noCache bool
	refresh bool
}

// stepsCommand creates the steps command for resolving a deck's builds.
func (c *CLI) stepsCommand() *cobra.Command {
	var opts stepsOptions

	cmd := &cobra.Command{
		Use:   "steps <deck>",
		Short: "Resolve the steps at which each layer is visible",
		Long: `Resolve the build specifications of a deck and print the steps at which
each layer is visible, as a table or as a JSON report.

A deck is a .txt file with one layer name per line (top of the layer panel
first), or a .json, .toml or .yaml file with "name" and "layers" keys.`,
		Example: `  # Show a table of layers against steps
  slidie steps slide.txt

  # Write the JSON report to a file
  slidie steps slide.yaml --format json -o slide.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSteps(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text or json (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colors in text output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the output cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached output")

	return cmd
}

func (c *CLI) runSteps(cmd *cobra.Command, path string, opts stepsOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	format := opts.format
	if format == "" {
		format = c.Config.Output.Format
	}
	if format != pipeline.FormatText && format != pipeline.FormatJSON {
		return fmt.Errorf("invalid format %q (must be text or json)", format)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Path:    path,
		Format:  format,
		Color:   c.Config.Output.Color && !opts.noColor && opts.output == "" && isTerminal(cmd.OutOrStdout()),
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %s", plural(result.Stats.LayerCount, "layer")))

	if opts.output != "" {
		if err := os.WriteFile(opts.output, result.Output, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		printSuccess("Resolved %s", result.Deck.Name)
		printFile(opts.output)
		printStats(result.Stats.LayerCount, result.Stats.StepCount, result.Stats.TagCount, result.Cached)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(result.Output)
	return err
}
