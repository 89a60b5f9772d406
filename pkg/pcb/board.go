package pcb

import "github.com/matzehuels/boardfit/pkg/geometry"

// Board is the placement area. The origin is the top-left corner and y
// grows downward; every coordinate in a Placement is relative to it.
type Board struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// DefaultBoard returns the standard 50×50 board.
func DefaultBoard() Board {
	return Board{Width: 50, Height: 50}
}

// Rect returns the board area as a rectangle anchored at the origin.
func (b Board) Rect() geometry.Rect {
	return geometry.Rect{X: 0, Y: 0, W: b.Width, H: b.Height}
}

// Center returns the board's center point.
func (b Board) Center() geometry.Point {
	return geometry.Point{X: b.Width / 2, Y: b.Height / 2}
}

// Constraints holds the tunable parameters of the placement rules.
// The rules themselves are fixed; profiles may adjust these values.
type Constraints struct {
	// ProximityRadius is the maximum center distance between the crystal
	// and the microcontroller.
	ProximityRadius float64 `json:"proximity_radius" bson:"proximity_radius"`

	// BalanceRadius is how far the unweighted center of mass of all
	// components may sit from the board center.
	BalanceRadius float64 `json:"balance_radius" bson:"balance_radius"`

	// KeepOut is the footprint of the keep-out zone in front of the USB
	// connector: W along the board edge, H reaching into the board.
	KeepOut geometry.Size `json:"keepout" bson:"keepout"`
}

// DefaultConstraints returns the standard rule parameters.
func DefaultConstraints() Constraints {
	return Constraints{
		ProximityRadius: 10.0,
		BalanceRadius:   2.0,
		KeepOut:         geometry.Size{W: 10, H: 20},
	}
}
