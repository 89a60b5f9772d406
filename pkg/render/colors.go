package render

import "github.com/matzehuels/boardfit/pkg/pcb"

// kindColors assigns each component kind its fill color. The schematic and
// nodelink renderers share the palette so components stay recognizable
// across visualization types.
var kindColors = map[pcb.Kind]string{
	pcb.KindUSB:       "#e74c3c",
	pcb.KindMicro:     "#3498db",
	pcb.KindCrystal:   "#f39c12",
	pcb.KindMikroBus1: "#9b59b6",
	pcb.KindMikroBus2: "#8e44ad",
}

// KindColor returns the fill color for a component kind.
// Unknown kinds render grey.
func KindColor(k pcb.Kind) string {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return "#7f8c8d"
}
