package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/boardfit/pkg/pcb"
	"github.com/matzehuels/boardfit/pkg/pcb/constraint"
)

func validPlacement() pcb.Placement {
	return pcb.NewPlacement(pcb.DefaultBoard(),
		pcb.Component{Kind: pcb.KindUSB, X: 22, Y: 0},
		pcb.Component{Kind: pcb.KindMicro, X: 23, Y: 36},
		pcb.Component{Kind: pcb.KindCrystal, X: 28, Y: 36},
		pcb.Component{Kind: pcb.KindMikroBus1, X: 0, Y: 20, Rotation: pcb.RotationQuarter},
		pcb.Component{Kind: pcb.KindMikroBus2, X: 35, Y: 20, Rotation: pcb.RotationQuarter},
	)
}

func mustValidate(t *testing.T, p pcb.Placement) constraint.Report {
	t.Helper()
	rep, err := constraint.Validate(p, pcb.DefaultConstraints())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return rep
}

func TestToDOT_Valid(t *testing.T) {
	p := validPlacement()
	dot := ToDOT(p, mustValidate(t, p), pcb.DefaultConstraints())

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, k := range pcb.Kinds() {
		if !strings.Contains(dot, `"`+string(k)+`"`) {
			t.Errorf("ToDOT() output missing node %s", k)
		}
	}
	if !strings.Contains(dot, "placement valid") {
		t.Error("ToDOT() output missing verdict label")
	}
	if !strings.Contains(dot, "5.00") {
		t.Error("ToDOT() output missing measured proximity distance")
	}
	if strings.Contains(dot, "color=red") {
		t.Error("ToDOT() valid placement should have no red edges")
	}
}

func TestToDOT_FailingRules(t *testing.T) {
	p := validPlacement()
	for i, c := range p.Components {
		if c.Kind == pcb.KindCrystal {
			p.Components[i].X = 40
		}
	}
	dot := ToDOT(p, mustValidate(t, p), pcb.DefaultConstraints())

	if !strings.Contains(dot, "2 of 7 rules failing") {
		t.Errorf("ToDOT() verdict label wrong:\n%s", dot)
	}
	if !strings.Contains(dot, "17.00") {
		t.Error("ToDOT() output missing measured proximity distance")
	}
	if !strings.Contains(dot, "color=red") {
		t.Error("ToDOT() failing proximity edge should be red")
	}
}

func TestToDOT_KeepOutZone(t *testing.T) {
	p := validPlacement()
	dot := ToDOT(p, mustValidate(t, p), pcb.DefaultConstraints())

	if !strings.Contains(dot, zoneID) {
		t.Error("ToDOT() output missing keep-out zone node")
	}
	if !strings.Contains(dot, `keep-out\n10 x 20`) {
		t.Error("ToDOT() output missing keep-out zone dimensions")
	}
	if !strings.Contains(dot, "style=dashed") {
		t.Error("ToDOT() USB to zone edge should be dashed")
	}
}

func TestNodeLabel(t *testing.T) {
	c := pcb.Component{Kind: pcb.KindUSB, X: 22, Y: 0}
	if got, want := nodeLabel(c), "USB\n(22, 0)"; got != want {
		t.Errorf("nodeLabel() = %q, want %q", got, want)
	}
}

func TestGraphLabel(t *testing.T) {
	valid := constraint.Report{Valid: true}
	if got := graphLabel(valid); got != "placement valid" {
		t.Errorf("graphLabel() valid = %q", got)
	}

	failing := constraint.Report{Results: []constraint.Result{
		{Rule: constraint.RuleBoundary, Passed: true},
		{Rule: constraint.RuleBalance, Passed: false},
	}}
	if got := graphLabel(failing); got != "1 of 2 rules failing" {
		t.Errorf("graphLabel() failing = %q", got)
	}
}

func TestEdgeAttrs(t *testing.T) {
	rep := constraint.Report{Results: []constraint.Result{
		{Rule: constraint.RuleProximity, Passed: false},
		{Rule: constraint.RuleParallel, Passed: true},
	}}

	if got := edgeAttrs(rep, constraint.RuleProximity, "dir=none"); !strings.Contains(got, "color=red") {
		t.Errorf("edgeAttrs() failing rule = %q, want red", got)
	}
	if got := edgeAttrs(rep, constraint.RuleParallel, "dir=none"); strings.Contains(got, "color=red") {
		t.Errorf("edgeAttrs() passing rule = %q, want no red", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="8 12 400 300" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400.00 300.00" width="400" height="300">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	// Simple DOT that should render
	dot := `digraph G { a -> b; }`
	svg, err := RenderSVG(dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}

	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	// Invalid DOT syntax
	dot := `not valid DOT {{{`
	_, err := RenderSVG(dot)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
