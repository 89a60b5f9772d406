package place

import (
	"math/rand/v2"

	"github.com/matzehuels/boardfit/pkg/pcb"
)

// ConnectorSpan says which pair of opposite edges the mikroBUS
// connectors occupy.
type ConnectorSpan string

const (
	// SpanLeftRight lays the connectors flat against the left and right
	// edges, rotated a quarter turn.
	SpanLeftRight ConnectorSpan = "left-right"

	// SpanTopBottom stands the connectors upright against the top and
	// bottom edges.
	SpanTopBottom ConnectorSpan = "top-bottom"
)

// Edge is a board edge the USB connector can be flush with.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
)

// Topology is one structural arrangement of the edge-bound components.
// The pairings keep the USB connector off the edges the mikroBUS
// connectors occupy.
type Topology struct {
	Connectors ConnectorSpan
	USB        Edge
}

// Topologies returns the four arrangements the search draws from.
func Topologies() []Topology {
	return []Topology{
		{Connectors: SpanLeftRight, USB: EdgeTop},
		{Connectors: SpanLeftRight, USB: EdgeBottom},
		{Connectors: SpanTopBottom, USB: EdgeLeft},
		{Connectors: SpanTopBottom, USB: EdgeRight},
	}
}

// frame places the three edge-bound components for one topology,
// uniformly along their assigned edges.
func (s Search) frame(t Topology, rng *rand.Rand) (usb, mb1, mb2 pcb.Component) {
	w, h := s.Board.Width, s.Board.Height
	fp := pcb.KindMikroBus1.Footprint()

	switch t.Connectors {
	case SpanLeftRight:
		eff := fp.Swapped()
		mb1 = pcb.Component{Kind: pcb.KindMikroBus1, X: 0, Y: randCoord(rng, h-eff.H), Rotation: pcb.RotationQuarter}
		mb2 = pcb.Component{Kind: pcb.KindMikroBus2, X: w - eff.W, Y: randCoord(rng, h-eff.H), Rotation: pcb.RotationQuarter}
	default:
		mb1 = pcb.Component{Kind: pcb.KindMikroBus1, X: randCoord(rng, w-fp.W), Y: 0}
		mb2 = pcb.Component{Kind: pcb.KindMikroBus2, X: randCoord(rng, w-fp.W), Y: h - fp.H}
	}

	ufp := pcb.KindUSB.Footprint()
	switch t.USB {
	case EdgeTop:
		usb = pcb.Component{Kind: pcb.KindUSB, X: randCoord(rng, w-ufp.W), Y: 0}
	case EdgeBottom:
		usb = pcb.Component{Kind: pcb.KindUSB, X: randCoord(rng, w-ufp.W), Y: h - ufp.H}
	case EdgeLeft:
		usb = pcb.Component{Kind: pcb.KindUSB, X: 0, Y: randCoord(rng, h-ufp.H)}
	default:
		usb = pcb.Component{Kind: pcb.KindUSB, X: w - ufp.W, Y: randCoord(rng, h-ufp.H)}
	}
	return usb, mb1, mb2
}

// randCoord draws an integer coordinate in [0, max]. A negative max
// means the component does not fit the board at all; the coordinate
// pins to 0 and the boundary rule rejects the frame.
func randCoord(rng *rand.Rand, max float64) float64 {
	n := int(max) + 1
	if n < 1 {
		return 0
	}
	return float64(rng.IntN(n))
}
