package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/slidie/pkg/builds"
	"github.com/matzehuels/slidie/pkg/deck"
)

// checkResult is the outcome of checking one deck.
type checkResult struct {
	path   string
	layers int
	steps  int
	err    error
}

// checkCommand creates the check command for validating many decks.
func (c *CLI) checkCommand() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "check <deck>...",
		Short: "Check decks for build specification errors",
		Long: `Load and resolve every given deck, reporting the ones with invalid steps,
unknown tags or cyclic tag references. Decks are checked concurrently.`,
		Example: `  slidie check slides/*.txt`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := checkDecks(cmd, args, jobs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if r.err != nil {
					failed++
					fmt.Fprintf(out, "%s %s: %s\n", styleIconError.Render(iconError), r.path, FormatError(r.err))
					continue
				}
				fmt.Fprintf(out, "%s %s %s\n", styleIconSuccess.Render(iconSuccess), r.path,
					StyleDim.Render(fmt.Sprintf("(%s, %s)", plural(r.layers, "layer"), plural(r.steps, "step"))))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d decks failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of decks checked at once")

	return cmd
}

// checkDecks checks every deck in paths, returning results in input order.
// A failing deck does not stop the others; only cancellation of the
// command's context is returned as an error.
func checkDecks(cmd *cobra.Command, paths []string, jobs int) ([]checkResult, error) {
	logger := loggerFromContext(cmd.Context())
	results := make([]checkResult, len(paths))

	g, gctx := errgroup.WithContext(cmd.Context())
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkDeck(path)
			logger.Debug("checked deck", "path", path, "ok", results[i].err == nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkDeck(path string) checkResult {
	r := checkResult{path: path}
	d, err := deck.Load(path)
	if err != nil {
		r.err = err
		return r
	}
	r.layers = len(d.Layers)
	res, err := builds.Evaluate(d.Layers)
	if err != nil {
		r.err = err
		return r
	}
	r.steps = len(res.StepNumbers())
	return r
}
