package place

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/matzehuels/boardfit/pkg/errors"
	"github.com/matzehuels/boardfit/pkg/pcb"
	"github.com/matzehuels/boardfit/pkg/pcb/constraint"
)

func TestRunFindsValidPlacement(t *testing.T) {
	p, stats, err := Search{}.Run(context.Background(), NewRNG(1))
	if err != nil {
		t.Fatalf("Run() error = %v (stats %+v)", err, stats)
	}

	report, err := constraint.Validate(p, pcb.DefaultConstraints())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !report.Valid {
		t.Errorf("found placement is invalid, failed rules: %+v", report.Failed())
	}

	if stats.Frames == 0 || stats.Candidates == 0 {
		t.Errorf("stats = %+v, want nonzero frames and candidates", stats)
	}

	for _, c := range p.Components {
		if c.X != math.Trunc(c.X) || c.Y != math.Trunc(c.Y) {
			t.Errorf("component %s at (%v, %v), want integer coordinates", c.Kind, c.X, c.Y)
		}
	}
}

func TestRunNilRNG(t *testing.T) {
	p, _, err := Search{}.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run(nil rng) error = %v", err)
	}

	report, err := constraint.Validate(p, pcb.DefaultConstraints())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !report.Valid {
		t.Errorf("found placement is invalid, failed rules: %+v", report.Failed())
	}
}

func TestRunDeterministic(t *testing.T) {
	a, aStats, err := Search{}.Run(context.Background(), NewRNG(42))
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	b, bStats, err := Search{}.Run(context.Background(), NewRNG(42))
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if a.Hash() != b.Hash() {
		t.Error("same seed produced different placements")
	}
	if aStats.Frames != bStats.Frames || aStats.Candidates != bStats.Candidates {
		t.Errorf("same seed produced different stats: %+v vs %+v", aStats, bStats)
	}
}

func TestRunExhaustsWithinBudget(t *testing.T) {
	// The connectors are 15 units long and can never fit a 10-unit
	// board, so every frame fails the boundary rule.
	s := Search{
		Board:       pcb.Board{Width: 10, Height: 10},
		Constraints: pcb.DefaultConstraints(),
		Budget:      300 * time.Millisecond,
		Margin:      100 * time.Millisecond,
	}

	start := time.Now()
	_, stats, err := s.Run(context.Background(), NewRNG(7))
	elapsed := time.Since(start)

	if !errors.Is(err, errors.ErrCodeSearchExhausted) {
		t.Fatalf("Run() error = %v, want code %v", err, errors.ErrCodeSearchExhausted)
	}
	if elapsed > 600*time.Millisecond {
		t.Errorf("Run() took %v, want within budget plus slack", elapsed)
	}
	if stats.Topologies != 4 {
		t.Errorf("Topologies = %d, want 4", stats.Topologies)
	}
	if stats.Frames == 0 {
		t.Error("Frames = 0, want at least one attempt before exhaustion")
	}
}

func TestRunHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := Search{Board: pcb.Board{Width: 10, Height: 10}, Constraints: pcb.DefaultConstraints()}
	_, _, err := s.Run(ctx, NewRNG(3))
	if err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunProgressAndDebug(t *testing.T) {
	var progress, debug int
	s := Search{
		Board:       pcb.Board{Width: 10, Height: 10},
		Constraints: pcb.DefaultConstraints(),
		Budget:      150 * time.Millisecond,
		Margin:      50 * time.Millisecond,
		Progress:    func(frames, candidates int, elapsed time.Duration) { progress++ },
		Debug:       func(info DebugInfo) { debug++ },
	}

	if _, _, err := s.Run(context.Background(), NewRNG(9)); !errors.Is(err, errors.ErrCodeSearchExhausted) {
		t.Fatalf("Run() error = %v, want exhaustion", err)
	}
	if progress == 0 {
		t.Error("Progress never called")
	}
	if debug != 4 {
		t.Errorf("Debug called %d times, want once per topology", debug)
	}
}

func TestPairTarget(t *testing.T) {
	s := Search{Board: pcb.DefaultBoard(), Constraints: pcb.DefaultConstraints()}

	frames := [][3]pcb.Component{
		{
			{Kind: pcb.KindUSB, X: 22, Y: 0},
			{Kind: pcb.KindMikroBus1, X: 0, Y: 20, Rotation: pcb.RotationQuarter},
			{Kind: pcb.KindMikroBus2, X: 35, Y: 20, Rotation: pcb.RotationQuarter},
		},
		{
			{Kind: pcb.KindUSB, X: 0, Y: 37},
			{Kind: pcb.KindMikroBus1, X: 11, Y: 0},
			{Kind: pcb.KindMikroBus2, X: 4, Y: 35},
		},
	}

	for _, f := range frames {
		usb, mb1, mb2 := f[0], f[1], f[2]
		target := s.pairTarget(usb, mb1, mb2)

		// With both interior centers exactly on target, the average of
		// all five centers is exactly the board center.
		avgX := (usb.Center().X + mb1.Center().X + mb2.Center().X + 2*target.X) / 5
		avgY := (usb.Center().Y + mb1.Center().Y + mb2.Center().Y + 2*target.Y) / 5
		if avgX != 25 || avgY != 25 {
			t.Errorf("pairTarget() = %v gives average (%v, %v), want (25, 25)", target, avgX, avgY)
		}
	}
}

func TestTopologies(t *testing.T) {
	topos := Topologies()
	if len(topos) != 4 {
		t.Fatalf("len(Topologies()) = %d, want 4", len(topos))
	}

	for _, topo := range topos {
		switch topo.Connectors {
		case SpanLeftRight:
			if topo.USB != EdgeTop && topo.USB != EdgeBottom {
				t.Errorf("left-right connectors paired with USB on %q", topo.USB)
			}
		case SpanTopBottom:
			if topo.USB != EdgeLeft && topo.USB != EdgeRight {
				t.Errorf("top-bottom connectors paired with USB on %q", topo.USB)
			}
		default:
			t.Errorf("unknown connector span %q", topo.Connectors)
		}
	}
}

func TestFrame(t *testing.T) {
	s := Search{Board: pcb.DefaultBoard(), Constraints: pcb.DefaultConstraints()}
	rng := NewRNG(11)
	board := s.Board.Rect()

	for _, topo := range Topologies() {
		for i := 0; i < 25; i++ {
			usb, mb1, mb2 := s.frame(topo, rng)

			for _, c := range []pcb.Component{usb, mb1, mb2} {
				if !c.Rect().Inside(board) {
					t.Fatalf("%v: %s at %v outside the board", topo, c.Kind, c.Rect())
				}
				if c.X != math.Trunc(c.X) || c.Y != math.Trunc(c.Y) {
					t.Fatalf("%v: %s at non-integer position (%v, %v)", topo, c.Kind, c.X, c.Y)
				}
			}

			switch topo.Connectors {
			case SpanLeftRight:
				if mb1.X != 0 || mb2.Rect().Right() != 50 {
					t.Errorf("%v: connectors not flush left and right: %v, %v", topo, mb1.Rect(), mb2.Rect())
				}
			case SpanTopBottom:
				if mb1.Y != 0 || mb2.Rect().Bottom() != 50 {
					t.Errorf("%v: connectors not flush top and bottom: %v, %v", topo, mb1.Rect(), mb2.Rect())
				}
			}

			r := usb.Rect()
			flush := map[Edge]bool{
				EdgeTop:    r.Y == 0,
				EdgeBottom: r.Bottom() == 50,
				EdgeLeft:   r.X == 0,
				EdgeRight:  r.Right() == 50,
			}
			if !flush[topo.USB] {
				t.Errorf("%v: USB at %v not flush with %q", topo, r, topo.USB)
			}
		}
	}
}
