// Package nodelink renders placements as constraint graphs.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// components appear as boxes connected by the pairwise rules that bind
// them. It's an alternative to the board schematic for cases where the
// constraint structure matters more than the geometry.
//
// # Usage
//
// Convert a placement to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(p, report, cons)
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Graph Structure
//
// One node per component, filled with the schematic's color palette and
// labeled with the component's position. The keep-out zone appears as a
// dashed grey node. Edges carry the pairwise rules:
//
//   - crystal to microcontroller: the proximity rule, labeled with the
//     measured center distance
//   - connector to connector: the parallel rule
//   - USB connector to keep-out zone: dashed
//
// The graph is titled with the validation verdict, and edges whose rule
// failed are drawn red.
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
