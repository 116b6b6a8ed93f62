package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidie/pkg/builds"
	"github.com/matzehuels/slidie/pkg/deck"
)

// convertCommand creates the convert command for changing deck file formats.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		to      string
		noCheck bool
	)

	cmd := &cobra.Command{
		Use:   "convert <deck> <output>",
		Short: "Convert a deck between text, JSON, TOML and YAML",
		Long: `Convert a deck to the format given by the output file's extension, or by
--to when writing to stdout ("-").

The deck is checked for build specification errors before it is written,
unless --no-check is given.`,
		Example: `  slidie convert slide.txt slide.yaml
  slidie convert slide.toml - --to json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			in, out := args[0], args[1]

			d, err := deck.Load(in)
			if err != nil {
				return err
			}
			logger.Debug("loaded deck", "deck", d.Name, "layers", len(d.Layers))

			if !noCheck {
				if _, err := builds.Evaluate(d.Layers); err != nil {
					return err
				}
			}

			if out == "-" {
				if to == "" {
					return fmt.Errorf("--to is required when writing to stdout")
				}
				return deck.Write(d, cmd.OutOrStdout(), deck.Format(to))
			}
			if err := deck.Save(d, out); err != nil {
				return err
			}
			printSuccess("Converted %s", plural(len(d.Layers), "layer"))
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "output format when writing to stdout: txt, json, toml or yaml")
	cmd.Flags().BoolVar(&noCheck, "no-check", false, "skip checking build specifications")

	return cmd
}
