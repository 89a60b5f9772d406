package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	boardio "github.com/matzehuels/boardfit/pkg/io"
	"github.com/matzehuels/boardfit/pkg/pcb/score"
)

// scoreCommand creates the score command for rating placement files.
func (c *CLI) scoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "score [placement.json]",
		Short: "Score a placement (lower is better)",
		Long: `Score a placement file.

The score is the bounding-box area of all components plus a weighted
distance from the microcontroller to the board center, so tight clusters
around the center score lowest. Scoring assumes the placement is valid;
run 'check' first if in doubt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := boardio.ImportJSON(args[0])
			if err != nil {
				return fmt.Errorf("load placement %s: %w", args[0], err)
			}
			printScore(score.Compute(p))
			return nil
		},
	}
}
