package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	boardio "github.com/matzehuels/boardfit/pkg/io"
	"github.com/matzehuels/boardfit/pkg/pipeline"
	"github.com/matzehuels/boardfit/pkg/profile"
)

// checkCommand creates the check command for validating placement files.
func (c *CLI) checkCommand() *cobra.Command {
	var profilePath string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "check [placement.json]",
		Short: "Validate a placement against the design rules",
		Long: `Validate a placement file against all seven design rules.

Every rule is evaluated, so the report always shows the full picture:
a placement that fails boundary checks still gets its proximity and
balance measurements. The command exits non-zero when any rule fails,
for use in scripts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if profilePath != "" {
				prof, err := profile.Load(profilePath)
				if err != nil {
					return err
				}
				applyProfile(&opts, prof)
			}
			return c.runCheck(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "TOML solver profile (flags override profile values)")
	cmd.Flags().Float64Var(&opts.ProximityRadius, "proximity", 0, "max crystal-microcontroller distance (default 10)")
	cmd.Flags().Float64Var(&opts.BalanceRadius, "balance", 0, "max center-of-mass offset from board center (default 2)")
	cmd.Flags().Float64Var(&opts.KeepOutWidth, "keepout-width", 0, "keep-out zone width (default 10)")
	cmd.Flags().Float64Var(&opts.KeepOutDepth, "keepout-depth", 0, "keep-out zone depth (default 20)")

	return cmd
}

// runCheck loads, validates, and reports on a placement file.
func (c *CLI) runCheck(ctx context.Context, input string, opts pipeline.Options) error {
	p, err := boardio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load placement %s: %w", input, err)
	}

	// Validation is pure; no cache needed.
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	rep, breakdown, err := runner.Check(ctx, p, opts)
	if err != nil {
		return err
	}

	printReport(rep)
	printScore(breakdown)
	printNewline()

	if !rep.Valid {
		failed := rep.Failed()
		printError("Placement violates %d of %d rules", len(failed), len(rep.Results))
		return fmt.Errorf("%d rule violation(s)", len(failed))
	}

	printSuccess("Placement satisfies all rules")
	printNextStep("Render", "boardfit render "+input)
	return nil
}
