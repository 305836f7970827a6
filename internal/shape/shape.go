// Package shape holds the collision shapes used by scrolling entities and the
// player, built on Chipmunk's bounding boxes and vectors.
//
// World coordinates grow upwards: a rectangle's (X, Y) is its bottom-left corner.
// Overlap is strict, so shapes that only touch along an edge do not collide.
package shape

import "github.com/jakecoffman/cp"

// Shape is anything that can take part in an overlap test.
type Shape interface {
	Bounds() cp.BB
}

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, W, H float64
}

// Bounds returns the box as a Chipmunk bounding box.
func (r Rect) Bounds() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}
}

// Circle is a disc given by its center and radius.
type Circle struct {
	X, Y, R float64
}

// Center returns the circle center.
func (c Circle) Center() cp.Vector {
	return cp.Vector{X: c.X, Y: c.Y}
}

// Bounds returns the smallest box containing the circle.
func (c Circle) Bounds() cp.BB {
	return cp.BB{L: c.X - c.R, B: c.Y - c.R, R: c.X + c.R, T: c.Y + c.R}
}

// Overlaps reports whether two shapes share interior points.
func Overlaps(a, b Shape) bool {
	switch sa := a.(type) {
	case Rect:
		switch sb := b.(type) {
		case Rect:
			return boxesOverlap(sa.Bounds(), sb.Bounds())
		case Circle:
			return circleBox(sb, sb.Center(), sa.Bounds())
		}
	case Circle:
		switch sb := b.(type) {
		case Rect:
			return circleBox(sa, sa.Center(), sb.Bounds())
		case Circle:
			reach := sa.R + sb.R
			return sa.Center().DistanceSq(sb.Center()) < reach*reach
		}
	}
	return boxesOverlap(a.Bounds(), b.Bounds())
}

// boxesOverlap is cp.BB.Intersects with strict bounds. Intersects counts a
// shared edge as contact, which would end a run on a graze.
func boxesOverlap(a, b cp.BB) bool {
	return a.L < b.R && a.R > b.L && a.B < b.T && a.T > b.B
}

// circleBox compares the distance from the circle center to the closest
// point of the box against the radius.
func circleBox(c Circle, center cp.Vector, bb cp.BB) bool {
	closest := bb.ClampVect(&center)
	return center.DistanceSq(closest) < c.R*c.R
}
