package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/boardfit/pkg/pcb"
	"github.com/matzehuels/boardfit/pkg/pcb/constraint"
	"github.com/matzehuels/boardfit/pkg/render"
)

// zoneID names the synthetic keep-out zone node.
const zoneID = "keep_out_zone"

// ToDOT converts a placement and its validation report to Graphviz DOT
// format for constraint-graph visualization. Components appear as filled
// boxes labeled with their position; edges carry the pairwise rules, and
// edges whose rule failed validation are drawn red.
//
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF],
// or [RenderPNG].
func ToDOT(p pcb.Placement, rep constraint.Report, cons pcb.Constraints) string {
	p = p.Normalized()
	board := p.Board
	if board.Width <= 0 || board.Height <= 0 {
		board = pcb.DefaultBoard()
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n", graphLabel(rep))
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  fontsize=20;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontcolor=white, fontsize=16, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, c := range p.Components {
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", string(c.Kind), nodeLabel(c), render.KindColor(c.Kind))
	}
	usb, hasUSB := p.Get(pcb.KindUSB)
	if hasUSB {
		zone := pcb.KeepOutZone(usb, board, cons)
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey, fontcolor=black];\n",
			zoneID, fmt.Sprintf("keep-out\n%g x %g", zone.W, zone.H))
	}

	buf.WriteString("\n")

	crystal, hasCrystal := p.Get(pcb.KindCrystal)
	micro, hasMicro := p.Get(pcb.KindMicro)
	if hasCrystal && hasMicro {
		dist := crystal.Center().Distance(micro.Center())
		attrs := edgeAttrs(rep, constraint.RuleProximity, "dir=none", fmt.Sprintf("label=%q", fmt.Sprintf("%.2f", dist)))
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", string(pcb.KindCrystal), string(pcb.KindMicro), attrs)
	}

	_, hasMB1 := p.Get(pcb.KindMikroBus1)
	_, hasMB2 := p.Get(pcb.KindMikroBus2)
	if hasMB1 && hasMB2 {
		attrs := edgeAttrs(rep, constraint.RuleParallel, "dir=none", `label="parallel"`)
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", string(pcb.KindMikroBus1), string(pcb.KindMikroBus2), attrs)
	}

	if hasUSB {
		attrs := edgeAttrs(rep, constraint.RuleKeepOut, "style=dashed")
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", string(pcb.KindUSB), zoneID, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func graphLabel(rep constraint.Report) string {
	if rep.Valid {
		return "placement valid"
	}
	return fmt.Sprintf("%d of %d rules failing", len(rep.Failed()), len(rep.Results))
}

func nodeLabel(c pcb.Component) string {
	return fmt.Sprintf("%s\n(%g, %g)", c.Kind.Label(), c.X, c.Y)
}

func edgeAttrs(rep constraint.Report, rule constraint.Rule, attrs ...string) string {
	if res, ok := rep.Result(rule); ok && !res.Passed {
		attrs = append(attrs, "color=red", "fontcolor=red")
	}
	return strings.Join(attrs, ", ")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
