// Package score rates placements for comparison. Lower is better.
package score

import (
	"github.com/matzehuels/boardfit/pkg/geometry"
	"github.com/matzehuels/boardfit/pkg/pcb"
)

// CentralityWeight converts the microcontroller's distance from the
// board center into score units before adding it to the footprint area.
const CentralityWeight = 10.0

// Breakdown is a placement score split into its terms.
type Breakdown struct {
	// Area is the area of the bounding box around all components.
	Area float64 `json:"area" bson:"area"`

	// Centrality is the distance from the microcontroller's center to
	// the board center.
	Centrality float64 `json:"centrality" bson:"centrality"`

	// Total is Area + CentralityWeight*Centrality.
	Total float64 `json:"total" bson:"total"`
}

// Compute scores a placement: a tight component cluster with the
// microcontroller near the board center scores lowest. Validity is not
// checked here; a placement without a microcontroller gets zero
// centrality.
func Compute(p pcb.Placement) Breakdown {
	area := geometry.BoundingBox(p.Rects()).Area()

	var centrality float64
	if micro, ok := p.Get(pcb.KindMicro); ok {
		centrality = micro.Center().Distance(p.Board.Center())
	}

	return Breakdown{
		Area:       area,
		Centrality: centrality,
		Total:      area + CentralityWeight*centrality,
	}
}
