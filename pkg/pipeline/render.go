package pipeline

import (
	"fmt"

	"github.com/matzehuels/boardfit/pkg/errors"
	"github.com/matzehuels/boardfit/pkg/pcb"
	"github.com/matzehuels/boardfit/pkg/pcb/constraint"
	"github.com/matzehuels/boardfit/pkg/pcb/score"
	"github.com/matzehuels/boardfit/pkg/render/nodelink"
	"github.com/matzehuels/boardfit/pkg/render/schematic"
)

// RenderPlacement generates output artifacts in the requested formats.
// The report and score flow into JSON artifacts and the constraint graph;
// they must belong to the placement being rendered.
func RenderPlacement(p pcb.Placement, rep constraint.Report, breakdown score.Breakdown, opts Options) (map[string][]byte, error) {
	if opts.IsConstraints() {
		return renderConstraints(p, rep, breakdown, opts)
	}
	return renderSchematic(p, rep, breakdown, opts)
}

// renderSchematic generates board schematic outputs.
func renderSchematic(p pcb.Placement, rep constraint.Report, breakdown score.Breakdown, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = schematic.RenderSVG(p, svgOpts...)
		case FormatPNG:
			data, err = schematic.RenderPNG(p, schematic.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = schematic.RenderPDF(p, schematic.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = schematic.RenderJSON(p, buildJSONOptions(rep, breakdown, opts)...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported schematic format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderConstraints generates constraint-graph outputs. The DOT source is
// generated once and shared by all formats.
func renderConstraints(p pcb.Placement, rep constraint.Report, breakdown score.Breakdown, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(p, rep, opts.Constraints())
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, 2.0)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = schematic.RenderJSON(p, buildJSONOptions(rep, breakdown, opts)...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported constraints format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds schematic rendering options.
func buildSVGOptions(opts Options) []schematic.SVGOption {
	svgOpts := []schematic.SVGOption{
		schematic.WithConstraints(opts.Constraints()),
	}
	if opts.Scale > 0 {
		svgOpts = append(svgOpts, schematic.WithScale(opts.Scale))
	}
	if opts.NoGrid {
		svgOpts = append(svgOpts, schematic.WithoutGrid())
	}
	if opts.NoOverlays {
		svgOpts = append(svgOpts, schematic.WithoutOverlays())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, schematic.WithTitle(opts.Title))
	}
	return svgOpts
}

// buildJSONOptions builds JSON artifact options. The seed is recorded only
// when explicitly set, so the artifact documents reproducible runs.
func buildJSONOptions(rep constraint.Report, breakdown score.Breakdown, opts Options) []schematic.JSONOption {
	jsonOpts := []schematic.JSONOption{
		schematic.WithJSONReport(rep),
		schematic.WithJSONScore(breakdown),
	}
	if seed, ok := opts.SeedValue(); ok {
		jsonOpts = append(jsonOpts, schematic.WithJSONSeed(seed))
	}
	return jsonOpts
}
