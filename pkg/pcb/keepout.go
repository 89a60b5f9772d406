package pcb

import "github.com/matzehuels/boardfit/pkg/geometry"

// KeepOutZone derives the signal keep-out rectangle in front of the USB
// connector. The zone butts against the board edge the connector sits on,
// centered on the connector, reaching KeepOut.H into the board.
//
// The edge is matched in fixed priority order: top, bottom, left, right.
// A connector flush in a corner therefore gets the top or bottom zone,
// never the side one. The final case is a fallthrough: a connector not
// flush with any of the first three edges gets the right-edge zone
// whether or not it actually touches it (the edge rule reports that
// separately).
func KeepOutZone(usb Component, b Board, c Constraints) geometry.Rect {
	width, depth := c.KeepOut.W, c.KeepOut.H
	r := usb.Rect()
	center := r.Center()

	switch {
	case r.Y == 0:
		return geometry.Rect{X: center.X - width/2, Y: 0, W: width, H: depth}
	case r.Bottom() == b.Height:
		return geometry.Rect{X: center.X - width/2, Y: b.Height - depth, W: width, H: depth}
	case r.X == 0:
		return geometry.Rect{X: 0, Y: center.Y - width/2, W: depth, H: width}
	default:
		return geometry.Rect{X: b.Width - depth, Y: center.Y - width/2, W: depth, H: width}
	}
}
