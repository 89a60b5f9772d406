package pcb

import "github.com/matzehuels/boardfit/pkg/geometry"

// Kind identifies one of the five components on the board.
type Kind string

// The component catalog. Every valid placement contains exactly one of each.
const (
	KindUSB       Kind = "usb_connector"
	KindMicro     Kind = "microcontroller"
	KindCrystal   Kind = "crystal"
	KindMikroBus1 Kind = "mikrobus_connector_1"
	KindMikroBus2 Kind = "mikrobus_connector_2"
)

// Kinds returns all component kinds in canonical order.
func Kinds() []Kind {
	return []Kind{KindUSB, KindMicro, KindCrystal, KindMikroBus1, KindMikroBus2}
}

// footprints maps each kind to its unrotated W×H footprint.
var footprints = map[Kind]geometry.Size{
	KindUSB:       {W: 5, H: 5},
	KindMicro:     {W: 5, H: 5},
	KindCrystal:   {W: 5, H: 5},
	KindMikroBus1: {W: 5, H: 15},
	KindMikroBus2: {W: 5, H: 15},
}

// labels maps each kind to its short display label.
var labels = map[Kind]string{
	KindUSB:       "USB",
	KindMicro:     "μC",
	KindCrystal:   "XTAL",
	KindMikroBus1: "MB1",
	KindMikroBus2: "MB2",
}

// Valid reports whether k is a known component kind.
func (k Kind) Valid() bool {
	_, ok := footprints[k]
	return ok
}

// Footprint returns the unrotated footprint of the kind.
// Unknown kinds have a zero footprint.
func (k Kind) Footprint() geometry.Size {
	return footprints[k]
}

// Label returns the short display label used in renderings and reports.
func (k Kind) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

// Rotation values supported by the board. Components are either upright
// or turned a quarter, which swaps the footprint's width and height.
const (
	RotationNone    = 0
	RotationQuarter = 90
)

// Component is one placed part: a kind anchored at its top-left corner.
type Component struct {
	Kind     Kind    `json:"kind" bson:"kind"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Rotation int     `json:"rotation,omitempty" bson:"rotation,omitempty"`
}

// Size returns the effective footprint with rotation applied.
func (c Component) Size() geometry.Size {
	fp := c.Kind.Footprint()
	if c.Rotation == RotationQuarter {
		return fp.Swapped()
	}
	return fp
}

// Rect returns the area occupied by the component.
func (c Component) Rect() geometry.Rect {
	s := c.Size()
	return geometry.Rect{X: c.X, Y: c.Y, W: s.W, H: s.H}
}

// Center returns the component's center point.
func (c Component) Center() geometry.Point {
	return c.Rect().Center()
}
