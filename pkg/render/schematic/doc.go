// Package schematic renders board placements as to-scale SVG schematics.
//
// # Overview
//
// The schematic is the primary visualization: the board drawn with its
// alignment grid, every component as a filled labeled rect, and optional
// overlays that make the placement rules visible:
//
//   - Proximity circle around the microcontroller center
//   - Keep-out zone in front of the USB connector
//   - Dashed path from the crystal to the microcontroller
//
// # Usage
//
// Render with defaults, or configure via options:
//
//	svg := schematic.RenderSVG(p)
//	svg := schematic.RenderSVG(p,
//	    schematic.WithScale(16),
//	    schematic.WithConstraints(cons),
//	    schematic.WithTitle("Rev B"),
//	)
//
// # Options
//
//   - [WithScale]: SVG pixels per board unit (default 12)
//   - [WithConstraints]: rule parameters used to size the overlays
//   - [WithoutGrid]: hide the 5-unit alignment grid
//   - [WithoutOverlays]: hide the rule overlays
//   - [WithTitle]: override the title text (empty hides it)
//
// # Other Formats
//
// [RenderJSON] exports the placement (plus optional report and score) as a
// pretty-printed JSON document. [RenderPDF] and [RenderPNG] convert the SVG
// via [render.ToPDF] and [render.ToPNG], which require librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [render.ToPDF]: github.com/matzehuels/boardfit/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/boardfit/pkg/render.ToPNG
package schematic
