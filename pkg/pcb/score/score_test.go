package score

import (
	"math"
	"testing"

	"github.com/matzehuels/boardfit/pkg/pcb"
)

func TestCompute(t *testing.T) {
	p := pcb.NewPlacement(pcb.DefaultBoard(),
		pcb.Component{Kind: pcb.KindUSB, X: 22, Y: 0},
		pcb.Component{Kind: pcb.KindMicro, X: 23, Y: 36},
		pcb.Component{Kind: pcb.KindCrystal, X: 28, Y: 36},
		pcb.Component{Kind: pcb.KindMikroBus1, X: 0, Y: 20, Rotation: pcb.RotationQuarter},
		pcb.Component{Kind: pcb.KindMikroBus2, X: 35, Y: 20, Rotation: pcb.RotationQuarter},
	)

	got := Compute(p)

	// Bounding box spans x in [0, 50], y in [0, 41].
	if got.Area != 2050 {
		t.Errorf("Area = %v, want 2050", got.Area)
	}
	if want := math.Hypot(0.5, 13.5); got.Centrality != want {
		t.Errorf("Centrality = %v, want %v", got.Centrality, want)
	}
	if want := got.Area + CentralityWeight*got.Centrality; got.Total != want {
		t.Errorf("Total = %v, want %v", got.Total, want)
	}
}

func TestComputeCenteredMicro(t *testing.T) {
	p := pcb.NewPlacement(pcb.DefaultBoard(),
		pcb.Component{Kind: pcb.KindMicro, X: 22.5, Y: 22.5},
	)

	if got := Compute(p); got.Centrality != 0 {
		t.Errorf("Centrality = %v, want 0 for centered microcontroller", got.Centrality)
	}
}

func TestComputePrefersTighterCluster(t *testing.T) {
	tight := pcb.NewPlacement(pcb.DefaultBoard(),
		pcb.Component{Kind: pcb.KindMicro, X: 20, Y: 20},
		pcb.Component{Kind: pcb.KindCrystal, X: 25, Y: 20},
	)
	spread := pcb.NewPlacement(pcb.DefaultBoard(),
		pcb.Component{Kind: pcb.KindMicro, X: 20, Y: 20},
		pcb.Component{Kind: pcb.KindCrystal, X: 45, Y: 45},
	)

	if Compute(tight).Total >= Compute(spread).Total {
		t.Error("tight cluster did not score below spread cluster")
	}
}
