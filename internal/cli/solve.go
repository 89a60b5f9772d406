package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boardfit/pkg/errors"
	boardio "github.com/matzehuels/boardfit/pkg/io"
	"github.com/matzehuels/boardfit/pkg/pipeline"
	"github.com/matzehuels/boardfit/pkg/profile"
)

// defaultSolveBase is the output base path when solve is run without --output.
const defaultSolveBase = "placement"

// solveCommand creates the solve command, the main entry point of the tool.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		seed        uint64
		profilePath string
		formatsStr  string
		output      string
		save        string
		noCache     bool
		watch       bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Search for a valid placement and render it",
		Long: `Search for a placement of all five components that satisfies every
design rule, then score and render the result.

The search is randomized and time-bounded: it tries the four structural
topologies in random order and gives up when the budget runs out. Not
finding a placement within the budget is a normal outcome, not an error.

Pass --seed for a reproducible search. Seeded results are cached locally;
unseeded runs draw fresh entropy and are never cached.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				opts.Seed = &seed
			}
			if profilePath != "" {
				prof, err := profile.Load(profilePath)
				if err != nil {
					return err
				}
				applyProfile(&opts, prof)
			}
			opts.Formats = parseFormats(formatsStr)
			return c.runSolve(cmd.Context(), opts, output, save, noCache, watch)
		},
	}

	// Search flags
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for a reproducible search")
	cmd.Flags().DurationVar(&opts.Budget, "budget", 0, "wall-clock budget for the search (default 2s)")
	cmd.Flags().DurationVar(&opts.Margin, "margin", 0, "budget slice reserved for post-processing (default 200ms)")
	cmd.Flags().IntVar(&opts.Attempts, "attempts", 0, "interior candidates per frame (default 100)")
	cmd.Flags().StringVar(&profilePath, "profile", "", "TOML solver profile (flags override profile values)")

	// Board and rule flags
	cmd.Flags().Float64Var(&opts.BoardWidth, "board-width", 0, "board width in units (default 50)")
	cmd.Flags().Float64Var(&opts.BoardHeight, "board-height", 0, "board height in units (default 50)")
	cmd.Flags().Float64Var(&opts.ProximityRadius, "proximity", 0, "max crystal-microcontroller distance (default 10)")
	cmd.Flags().Float64Var(&opts.BalanceRadius, "balance", 0, "max center-of-mass offset from board center (default 2)")
	cmd.Flags().Float64Var(&opts.KeepOutWidth, "keepout-width", 0, "keep-out zone width (default 10)")
	cmd.Flags().Float64Var(&opts.KeepOutDepth, "keepout-depth", 0, "keep-out zone depth (default 20)")

	// Render flags
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", "", "visualization type: schematic (default), constraints")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "pixels per board unit (default 12)")
	cmd.Flags().BoolVar(&opts.NoGrid, "no-grid", false, "omit the unit grid from schematics")
	cmd.Flags().BoolVar(&opts.NoOverlays, "no-overlays", false, "omit rule overlays (proximity circle, keep-out zone)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "schematic title")

	// Behavior flags
	cmd.Flags().StringVar(&save, "save", "", "also write the solved placement as JSON to this path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&watch, "watch", false, "show live search progress")

	return cmd
}

// runSolve executes the full pipeline and reports the outcome.
func (c *CLI) runSolve(ctx context.Context, opts pipeline.Options, output, save string, noCache, watch bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	var result *pipeline.Result
	if watch {
		result, err = c.solveWatched(ctx, runner, opts)
	} else {
		spinner := newSpinnerWithContext(ctx, "Searching for a placement...")
		spinner.Start()
		result, err = runner.Execute(ctx, opts)
		spinner.Stop()
	}

	if errors.Is(err, errors.ErrCodeSearchExhausted) {
		printWarning("No valid placement found within %s", opts.Budget)
		printDetail("The rules may be unsatisfiable for this board; try a larger budget or board")
		return nil
	}
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Found a valid placement")
	printStats(result.Stats, result.CacheInfo.SolveHit)
	printNewline()
	printReport(result.Report)
	printScore(result.Score)
	printNewline()

	// Soft real-time check: the solve stage must fit the budget. Small
	// overshoot by one validation call is tolerated by design; flag
	// anything beyond it.
	if result.Stats.SolveTime > opts.Budget+50*time.Millisecond {
		printWarning("Solve took %s, over the %s budget", result.Stats.SolveTime.Round(time.Millisecond), opts.Budget)
	} else {
		printDetail("solve %s / budget %s", result.Stats.SolveTime.Round(time.Millisecond), opts.Budget)
	}

	if output == "" {
		output = defaultSolveBase
	}
	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     defaultSolveBase,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
	}); err != nil {
		return err
	}

	if save != "" {
		if err := boardio.ExportJSON(result.Placement, save); err != nil {
			return fmt.Errorf("save placement: %w", err)
		}
		printFile(save)
		printNewline()
		printNextStep("Inspect", "boardfit check "+save)
	}

	return nil
}
