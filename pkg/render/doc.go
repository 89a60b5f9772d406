// Package render provides visualization rendering for board placements.
//
// # Overview
//
// This package contains the rendering layer that turns solved placements
// into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Board schematics (in [schematic] subpackage)
//   - Constraint graphs (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both renderers share them.
//
//	svg := schematic.RenderSVG(p, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Board Schematics
//
// The [schematic] subpackage draws the board to scale: component rects with
// labels, the alignment grid, and optional rule overlays (proximity circle,
// keep-out zone, crystal-to-microcontroller path).
//
// # Constraint Graphs
//
// The [nodelink] subpackage renders the placement's constraint structure as
// a Graphviz diagram. Components appear as boxes connected by the pairwise
// rules that bind them, with failing rules drawn in red.
//
//	dot := nodelink.ToDOT(p, report, cons)
//	svg, err := nodelink.RenderSVG(dot)
//
// [schematic]: github.com/matzehuels/boardfit/pkg/render/schematic
// [nodelink]: github.com/matzehuels/boardfit/pkg/render/nodelink
package render
