// Package geometry provides the 2D primitives used for board placement:
// points, sizes, axis-aligned rectangles, and segment intersection tests.
//
// Coordinates follow the board convention: the origin is the top-left
// corner and y grows downward. All predicates are pure float64 math.
//
// Two conventions matter to callers:
//
//   - Overlaps is an open-interval test. Rectangles that merely share an
//     edge or a corner do not overlap.
//   - Segment intersection is strict. Collinear overlap and endpoint
//     touching do not count as crossings.
package geometry

import "math"

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Size is a width/height pair.
type Size struct {
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
}

// Swapped returns the size with width and height exchanged.
func (s Size) Swapped() Size {
	return Size{W: s.H, H: s.W}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.W * r.H }

// Overlaps reports whether r and o share interior area.
// Flush edges and corners are not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right() <= o.X || r.X >= o.Right() ||
		r.Bottom() <= o.Y || r.Y >= o.Bottom())
}

// Inside reports whether r lies entirely within outer, edges included.
func (r Rect) Inside(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.Right() <= outer.Right() && r.Bottom() <= outer.Bottom()
}

// Corners returns the four corner points in clockwise order starting
// at the anchor (top-left, top-right, bottom-right, bottom-left).
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.X, r.Y},
		{r.Right(), r.Y},
		{r.Right(), r.Bottom()},
		{r.X, r.Bottom()},
	}
}

// Edges returns the four boundary segments in clockwise order.
func (r Rect) Edges() [4]Segment {
	c := r.Corners()
	return [4]Segment{
		{c[0], c[1]},
		{c[1], c[2]},
		{c[2], c[3]},
		{c[3], c[0]},
	}
}

// Segment is a line segment between two points.
type Segment struct {
	A, B Point
}

// ccw reports whether a→b→c makes a strict counter-clockwise turn.
// Collinear points return false, which makes the intersection test strict.
func ccw(a, b, c Point) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

// Intersects reports whether s and t properly cross.
// Shared endpoints and collinear overlap do not count.
func (s Segment) Intersects(t Segment) bool {
	return ccw(s.A, t.A, t.B) != ccw(s.B, t.A, t.B) &&
		ccw(s.A, s.B, t.A) != ccw(s.A, s.B, t.B)
}

// SegmentIntersectsRect reports whether s properly crosses any edge of r.
// A segment contained entirely inside r crosses no edge and returns false.
func SegmentIntersectsRect(s Segment, r Rect) bool {
	for _, e := range r.Edges() {
		if s.Intersects(e) {
			return true
		}
	}
	return false
}

// BoundingBox returns the smallest rectangle containing all rects.
// The zero Rect is returned for an empty slice.
func BoundingBox(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	minX, minY := rects[0].X, rects[0].Y
	maxX, maxY := rects[0].Right(), rects[0].Bottom()
	for _, r := range rects[1:] {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.Right())
		maxY = math.Max(maxY, r.Bottom())
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
