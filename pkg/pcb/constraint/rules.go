package constraint

import (
	"fmt"
	"strings"

	"github.com/matzehuels/boardfit/pkg/geometry"
	"github.com/matzehuels/boardfit/pkg/pcb"
)

// boundary requires every component to sit fully on the board. Flush
// against the outline is fine.
func (pl placed) boundary() Result {
	var outside []string
	for _, c := range pl.all {
		if !c.Rect().Inside(pl.board.Rect()) {
			outside = append(outside, string(c.Kind))
		}
	}
	if len(outside) > 0 {
		return Result{Rule: RuleBoundary, Detail: strings.Join(outside, ", ") + " outside the board"}
	}
	return Result{Rule: RuleBoundary, Passed: true}
}

// noOverlap forbids any two components from sharing interior area.
// Touching edges or corners do not count as overlap.
func (pl placed) noOverlap() Result {
	var clashes []string
	for i := 0; i < len(pl.all); i++ {
		for j := i + 1; j < len(pl.all); j++ {
			if pl.all[i].Rect().Overlaps(pl.all[j].Rect()) {
				clashes = append(clashes, fmt.Sprintf("%s overlaps %s", pl.all[i].Kind, pl.all[j].Kind))
			}
		}
	}
	if len(clashes) > 0 {
		return Result{Rule: RuleNoOverlap, Detail: strings.Join(clashes, "; ")}
	}
	return Result{Rule: RuleNoOverlap, Passed: true}
}

// edge requires the USB and both mikroBUS connectors to be flush with
// some board edge. Any edge qualifies, and each connector independently.
func (pl placed) edge() Result {
	var loose []string
	for _, c := range []pcb.Component{pl.usb, pl.mb1, pl.mb2} {
		if !onEdge(c.Rect(), pl.board) {
			loose = append(loose, string(c.Kind))
		}
	}
	if len(loose) > 0 {
		return Result{Rule: RuleEdge, Detail: strings.Join(loose, ", ") + " not flush with an edge"}
	}
	return Result{Rule: RuleEdge, Passed: true}
}

func onEdge(r geometry.Rect, b pcb.Board) bool {
	return r.X == 0 || r.Y == 0 || r.Right() == b.Width || r.Bottom() == b.Height
}

// parallel requires the two mikroBUS connectors to share an orientation
// and to be flush with opposite board edges. Either connector may take
// either side.
func (pl placed) parallel() Result {
	a, b := pl.mb1.Rect(), pl.mb2.Rect()
	if a.W != b.W {
		return Result{Rule: RuleParallel, Detail: "connector orientations differ"}
	}

	w, h := pl.board.Width, pl.board.Height
	opposite := (a.X == 0 && b.Right() == w) ||
		(a.Right() == w && b.X == 0) ||
		(a.Y == 0 && b.Bottom() == h) ||
		(a.Bottom() == h && b.Y == 0)
	if !opposite {
		return Result{Rule: RuleParallel, Detail: "connectors not flush with opposite edges"}
	}
	return Result{Rule: RuleParallel, Passed: true}
}

// proximity bounds the center distance between the crystal and the
// microcontroller. The measured distance is always reported.
func (pl placed) proximity() Result {
	d := pl.crystal.Center().Distance(pl.micro.Center())
	return Result{
		Rule:   RuleProximity,
		Passed: d <= pl.cons.ProximityRadius,
		Detail: fmt.Sprintf("distance %.2f", d),
	}
}

// balance bounds how far the unweighted center of mass of all component
// centers may drift from the board center. The measured offset is
// always reported.
func (pl placed) balance() Result {
	var sum geometry.Point
	for _, c := range pl.all {
		center := c.Center()
		sum.X += center.X
		sum.Y += center.Y
	}
	n := float64(len(pl.all))
	com := geometry.Point{X: sum.X / n, Y: sum.Y / n}
	d := com.Distance(pl.board.Center())
	return Result{
		Rule:   RuleBalance,
		Passed: d <= pl.cons.BalanceRadius,
		Detail: fmt.Sprintf("center of mass off by %.2f", d),
	}
}

// keepOut forbids the straight signal path between the crystal and the
// microcontroller from crossing the keep-out zone boundary in front of
// the USB connector. A path that runs entirely inside the zone, or only
// grazes its boundary, does not cross it.
func (pl placed) keepOut() Result {
	zone := pcb.KeepOutZone(pl.usb, pl.board, pl.cons)
	path := geometry.Segment{A: pl.crystal.Center(), B: pl.micro.Center()}
	if geometry.SegmentIntersectsRect(path, zone) {
		return Result{Rule: RuleKeepOut, Detail: "crystal to microcontroller path crosses the keep-out zone"}
	}
	return Result{Rule: RuleKeepOut, Passed: true}
}
