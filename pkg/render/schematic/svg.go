package schematic

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/boardfit/pkg/pcb"
	"github.com/matzehuels/boardfit/pkg/render"
)

// DefaultScale is the number of SVG pixels per board unit.
const DefaultScale = 12.0

// DefaultTitle is the heading drawn above the board.
const DefaultTitle = "Component Placement"

const (
	canvasPad = 30.0 // padding around the board, px
	titleBand = 36.0 // vertical space reserved above the board, px
	gridStep  = 5.0  // grid spacing, board units
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale    float64
	cons     pcb.Constraints
	grid     bool
	overlays bool
	title    string
}

// WithScale sets the SVG pixels per board unit. Non-positive values keep
// the default.
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithConstraints sets the rule parameters used to size the proximity
// circle and keep-out zone overlays.
func WithConstraints(c pcb.Constraints) SVGOption { return func(r *svgRenderer) { r.cons = c } }

// WithoutGrid hides the alignment grid.
func WithoutGrid() SVGOption { return func(r *svgRenderer) { r.grid = false } }

// WithoutOverlays hides the rule overlays (proximity circle, keep-out
// zone, crystal-to-microcontroller path).
func WithoutOverlays() SVGOption { return func(r *svgRenderer) { r.overlays = false } }

// WithTitle overrides the title text. An empty string hides the title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG draws the placement as a to-scale schematic.
// Components are drawn in canonical catalog order so equal placements
// produce identical bytes.
func RenderSVG(p pcb.Placement, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	p = p.Normalized()

	board := p.Board
	if board.Width <= 0 || board.Height <= 0 {
		board = pcb.DefaultBoard()
	}

	w := board.Width*r.scale + 2*canvasPad
	h := board.Height*r.scale + 2*canvasPad + titleBand

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", w, h)

	r.renderTitle(&buf, w)
	r.renderBoard(&buf, board)
	if r.grid {
		r.renderGrid(&buf, board)
	}
	if r.overlays {
		r.renderZones(&buf, p, board)
	}
	r.renderComponents(&buf, p)
	if r.overlays {
		r.renderPath(&buf, p)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		scale:    DefaultScale,
		cons:     pcb.DefaultConstraints(),
		grid:     true,
		overlays: true,
		title:    DefaultTitle,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// px converts a board length to pixels; x and y convert board coordinates
// to canvas coordinates. The board's y grows downward, as does SVG's, so
// no flip is needed.
func (r *svgRenderer) px(v float64) float64 { return v * r.scale }
func (r *svgRenderer) x(v float64) float64  { return canvasPad + v*r.scale }
func (r *svgRenderer) y(v float64) float64  { return canvasPad + titleBand + v*r.scale }

func (r *svgRenderer) renderTitle(buf *bytes.Buffer, w float64) {
	if r.title == "" {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="Helvetica, Arial, sans-serif" font-size="18" font-weight="bold" fill="#2c3e50">%s</text>`+"\n",
		w/2, (canvasPad+titleBand)/2, escapeXML(r.title))
}

func (r *svgRenderer) renderBoard(buf *bytes.Buffer, b pcb.Board) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#fdfdfd" stroke="#2c3e50" stroke-width="2"/>`+"\n",
		r.x(0), r.y(0), r.px(b.Width), r.px(b.Height))
}

func (r *svgRenderer) renderGrid(buf *bytes.Buffer, b pcb.Board) {
	for gx := gridStep; gx < b.Width; gx += gridStep {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#d5d8dc" stroke-width="1" stroke-dasharray="4 4"/>`+"\n",
			r.x(gx), r.y(0), r.x(gx), r.y(b.Height))
	}
	for gy := gridStep; gy < b.Height; gy += gridStep {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#d5d8dc" stroke-width="1" stroke-dasharray="4 4"/>`+"\n",
			r.x(0), r.y(gy), r.x(b.Width), r.y(gy))
	}
}

// renderZones draws the rule areas under the components: the keep-out
// zone in front of the USB connector and the proximity circle around the
// microcontroller center.
func (r *svgRenderer) renderZones(buf *bytes.Buffer, p pcb.Placement, b pcb.Board) {
	if usb, ok := p.Get(pcb.KindUSB); ok {
		zone := pcb.KeepOutZone(usb, b, r.cons)
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#e74c3c" fill-opacity="0.15" stroke="#e74c3c" stroke-width="1" stroke-dasharray="6 4"/>`+"\n",
			r.x(zone.X), r.y(zone.Y), r.px(zone.W), r.px(zone.H))
	}
	if micro, ok := p.Get(pcb.KindMicro); ok {
		c := micro.Center()
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="#f39c12" fill-opacity="0.10" stroke="#f39c12" stroke-width="1" stroke-dasharray="6 4"/>`+"\n",
			r.x(c.X), r.y(c.Y), r.px(r.cons.ProximityRadius))
	}
}

func (r *svgRenderer) renderComponents(buf *bytes.Buffer, p pcb.Placement) {
	for _, c := range p.Components {
		rect := c.Rect()
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#000000" stroke-width="1"/>`+"\n",
			r.x(rect.X), r.y(rect.Y), r.px(rect.W), r.px(rect.H), render.KindColor(c.Kind))

		center := rect.Center()
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="Helvetica, Arial, sans-serif" font-size="%.1f" font-weight="bold" fill="#ffffff">%s</text>`+"\n",
			r.x(center.X), r.y(center.Y), 0.9*r.scale, escapeXML(c.Kind.Label()))
	}
}

// renderPath draws the dashed crystal-to-microcontroller line on top of
// the components, the same path the keep-out rule tests.
func (r *svgRenderer) renderPath(buf *bytes.Buffer, p pcb.Placement) {
	crystal, okC := p.Get(pcb.KindCrystal)
	micro, okM := p.Get(pcb.KindMicro)
	if !okC || !okM {
		return
	}
	a, b := crystal.Center(), micro.Center()
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000000" stroke-width="1.5" stroke-dasharray="5 4"/>`+"\n",
		r.x(a.X), r.y(a.Y), r.x(b.X), r.y(b.Y))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
