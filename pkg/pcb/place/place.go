// Package place finds valid placements by randomized, constraint-guided
// search.
//
// The search works in two layers. The edge-bound components (the USB
// connector and the two mikroBUS connectors) are highly constrained, so
// each attempt first drops them onto the edges a topology assigns them.
// The two interior components are then not searched blindly: the balance
// rule fixes, in closed form, where their combined center of mass has to
// be, so the microcontroller is jittered around that target and the
// crystal swung around the microcontroller within the proximity radius.
// Every candidate goes through full validation; the first valid one
// wins.
package place

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/boardfit/pkg/errors"
	"github.com/matzehuels/boardfit/pkg/geometry"
	"github.com/matzehuels/boardfit/pkg/pcb"
	"github.com/matzehuels/boardfit/pkg/pcb/constraint"
)

// Defaults applied by Run for zero-valued Search fields.
const (
	DefaultBudget   = 2 * time.Second
	DefaultMargin   = 200 * time.Millisecond
	DefaultAttempts = 100
)

// targetJitter is the uniform offset applied to the microcontroller
// around its derived target center, per axis.
const targetJitter = 5.0

// Search finds a valid placement within a wall-clock budget. The zero
// value searches the default board with default constraints.
type Search struct {
	Board       pcb.Board
	Constraints pcb.Constraints

	// Budget is the total wall-clock allowance and Margin the slice of
	// it reserved for the caller's post-processing. The effective
	// deadline is Budget-Margin after Run starts; it is shared across
	// topologies, not reset per topology. Zero values take the
	// defaults.
	Budget time.Duration
	Margin time.Duration

	// Attempts is the number of interior candidates tried per frame.
	Attempts int

	// Progress, when set, is called after every frame with running
	// totals. Throttling is the callback's business.
	Progress func(frames, candidates int, elapsed time.Duration)

	// Debug, when set, receives a snapshot each time the search moves
	// on to the next topology.
	Debug func(DebugInfo)
}

// Stats describes the work a search performed.
type Stats struct {
	Topologies int
	Frames     int
	Candidates int
	Elapsed    time.Duration
}

// DebugInfo is a point-in-time snapshot handed to Debug callbacks.
type DebugInfo struct {
	Topology   Topology
	Frames     int
	Candidates int
	Elapsed    time.Duration
}

// NewRNG returns a generator for the given seed. Search draws from
// whatever generator the caller passes; this is the seeding every
// caller in this repo uses.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Run searches until it finds a valid placement or the deadline passes.
// The caller owns the generator; the same seed replays the same search.
// A nil generator gets a time-seeded one. On exhaustion it returns a
// SEARCH_EXHAUSTED error, with stats describing the work done either
// way. Absence of a solution is a normal outcome, not a fault.
func (s Search) Run(ctx context.Context, rng *rand.Rand) (pcb.Placement, Stats, error) {
	s = s.withDefaults()
	if rng == nil {
		rng = NewRNG(uint64(time.Now().UnixNano()))
	}
	start := time.Now()
	deadline := start.Add(s.Budget - s.Margin)

	topologies := Topologies()
	rng.Shuffle(len(topologies), func(i, j int) {
		topologies[i], topologies[j] = topologies[j], topologies[i]
	})

	var stats Stats
	for _, topo := range topologies {
		stats.Topologies++
		if s.Debug != nil {
			s.Debug(DebugInfo{
				Topology:   topo,
				Frames:     stats.Frames,
				Candidates: stats.Candidates,
				Elapsed:    time.Since(start),
			})
		}

		// The clock is checked once per frame. A frame's worth of
		// candidates may overshoot the deadline slightly.
		for time.Now().Before(deadline) && ctx.Err() == nil {
			usb, mb1, mb2 := s.frame(topo, rng)
			target := s.pairTarget(usb, mb1, mb2)
			stats.Frames++

			for i := 0; i < s.Attempts; i++ {
				micro, crystal := s.candidate(target, rng)
				stats.Candidates++

				p := pcb.NewPlacement(s.Board, usb, micro, crystal, mb1, mb2)
				report, err := constraint.Validate(p, s.Constraints)
				if err != nil {
					return pcb.Placement{}, stats, err
				}
				if report.Valid {
					stats.Elapsed = time.Since(start)
					return p, stats, nil
				}
			}

			if s.Progress != nil {
				s.Progress(stats.Frames, stats.Candidates, time.Since(start))
			}
		}
	}

	stats.Elapsed = time.Since(start)
	if err := ctx.Err(); err != nil {
		return pcb.Placement{}, stats, err
	}
	return pcb.Placement{}, stats, errors.New(errors.ErrCodeSearchExhausted,
		"no valid placement found within %s", s.Budget-s.Margin)
}

func (s Search) withDefaults() Search {
	if s.Board == (pcb.Board{}) {
		s.Board = pcb.DefaultBoard()
	}
	if s.Constraints == (pcb.Constraints{}) {
		s.Constraints = pcb.DefaultConstraints()
	}
	if s.Budget <= 0 {
		s.Budget = DefaultBudget
	}
	if s.Margin <= 0 {
		s.Margin = DefaultMargin
	}
	if s.Attempts <= 0 {
		s.Attempts = DefaultAttempts
	}
	return s
}

// pairTarget derives the shared center the microcontroller and crystal
// should straddle so that the average of all five component centers
// lands exactly on the board center.
func (s Search) pairTarget(usb, mb1, mb2 pcb.Component) geometry.Point {
	c := s.Board.Center()
	sumX := 5*c.X - usb.Center().X - mb1.Center().X - mb2.Center().X
	sumY := 5*c.Y - usb.Center().Y - mb1.Center().Y - mb2.Center().Y
	return geometry.Point{X: sumX / 2, Y: sumY / 2}
}

// candidate jitters the microcontroller around the target and swings
// the crystal around the microcontroller's resulting center, within the
// proximity radius. Coordinates are truncated to integer board units;
// out-of-range values are left for validation to reject.
func (s Search) candidate(target geometry.Point, rng *rand.Rand) (micro, crystal pcb.Component) {
	mc := pcb.KindMicro.Footprint()
	jx := rng.Float64()*2*targetJitter - targetJitter
	jy := rng.Float64()*2*targetJitter - targetJitter
	micro = pcb.Component{
		Kind: pcb.KindMicro,
		X:    math.Trunc(target.X - mc.W/2 + jx),
		Y:    math.Trunc(target.Y - mc.H/2 + jy),
	}

	angle := rng.Float64() * 2 * math.Pi
	dist := rng.Float64() * s.Constraints.ProximityRadius
	center := micro.Center()
	cr := pcb.KindCrystal.Footprint()
	crystal = pcb.Component{
		Kind: pcb.KindCrystal,
		X:    math.Trunc(center.X + dist*math.Cos(angle) - cr.W/2),
		Y:    math.Trunc(center.Y + dist*math.Sin(angle) - cr.H/2),
	}
	return micro, crystal
}
