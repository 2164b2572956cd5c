// Package geometry implements the positional relationship checks that decide
// whether one placeable sits under or over another. All checks combine a
// strict elevation comparison with a 2D containment or overlap test in
// scene-pixel space.
package geometry

import "math"

// Point is a 2D coordinate in scene-pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle described by two opposite corners.
// BottomLeft is expected to be at or below-left of TopRight on both axes.
type Rect struct {
	BottomLeft Point `json:"bottom_left"`
	TopRight   Point `json:"top_right"`
}

// Position is the closed set of spatial representations a placeable can be
// compared with: its center point or its footprint rectangle.
type Position interface {
	isPosition()
}

func (Point) isPosition() {}
func (Rect) isPosition()  {}

// UseMode selects which representation of a placeable participates in a check.
type UseMode string

const (
	UseCenter    UseMode = "center"
	UseRectangle UseMode = "rectangle"
)

// CheckType selects the direction of the elevation comparison.
type CheckType string

const (
	Under CheckType = "under"
	Over  CheckType = "over"
)

// ContainsStrict reports whether p lies strictly inside r. Points on an edge
// or corner of r do not count as contained.
func (r Rect) ContainsStrict(p Point) bool {
	return p.X > r.BottomLeft.X && p.X < r.TopRight.X &&
		p.Y > r.BottomLeft.Y && p.Y < r.TopRight.Y
}

// OverlapsStrict reports whether the open interiors of r and o overlap.
// Rectangles that only share an edge or a corner do not count as overlapping.
func (r Rect) OverlapsStrict(o Rect) bool {
	return r.BottomLeft.X < o.TopRight.X && o.BottomLeft.X < r.TopRight.X &&
		r.BottomLeft.Y < o.TopRight.Y && o.BottomLeft.Y < r.TopRight.Y
}

func (p Point) valid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (r Rect) valid() bool {
	return r.BottomLeft.valid() && r.TopRight.valid() &&
		r.BottomLeft.X <= r.TopRight.X && r.BottomLeft.Y <= r.TopRight.Y
}
