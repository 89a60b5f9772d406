package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	boardio "github.com/matzehuels/boardfit/pkg/io"
	"github.com/matzehuels/boardfit/pkg/pipeline"
	"github.com/matzehuels/boardfit/pkg/profile"
)

// renderCommand creates the render command for visualizing placement files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		profilePath string
		formatsStr  string
		output      string
		noCache     bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [placement.json]",
		Short: "Render a placement to SVG, PNG, PDF, JSON, or DOT",
		Long: `Render a placement file to visual artifacts.

Two visualization types are available: 'schematic' draws the board with
its components, the proximity circle, the keep-out zone, and the
crystal-microcontroller signal path; 'constraints' draws the rule
structure as a node-link diagram via Graphviz.

Artifacts are cached locally by placement content and render options,
so re-rendering an unchanged placement is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if profilePath != "" {
				prof, err := profile.Load(profilePath)
				if err != nil {
					return err
				}
				applyProfile(&opts, prof)
			}
			opts.Formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&profilePath, "profile", "", "TOML solver profile (flags override profile values)")

	// Render flags
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", "", "visualization type: schematic (default), constraints")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "pixels per board unit (default 12)")
	cmd.Flags().BoolVar(&opts.NoGrid, "no-grid", false, "omit the unit grid from schematics")
	cmd.Flags().BoolVar(&opts.NoOverlays, "no-overlays", false, "omit rule overlays (proximity circle, keep-out zone)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "schematic title")

	return cmd
}

// runRender loads the placement, validates it for the report overlays,
// and renders the requested artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	p, err := boardio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load placement %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = loggerFromContext(ctx)
	prog := newProgress(opts.Logger)

	// The JSON and DOT artifacts embed the validation verdict, so check
	// before rendering. An invalid placement still renders; the report
	// carries the violations.
	rep, breakdown, err := runner.Check(ctx, p, opts)
	if err != nil {
		return err
	}
	if !rep.Valid {
		printWarning("Placement violates %d rule(s); rendering anyway", len(rep.Failed()))
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, p, rep, breakdown, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(artifacts)))
	printSuccess("Rendered %s", input)
	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  cacheHit,
	})
}
