// Package core provides fundamental types shared by the simulation and the
// platforms. It contains no external dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

import "math"

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport maps world units (y grows upwards, origin at the bottom left) to
// screen cells (y grows downwards, origin at the top left).
type Viewport struct {
	WorldW, WorldH float64
	CellsW, CellsH int
}

// NewViewport creates a viewport that stretches the world over the cell grid.
func NewViewport(worldW, worldH float64, cellsW, cellsH int) Viewport {
	return Viewport{WorldW: worldW, WorldH: worldH, CellsW: cellsW, CellsH: cellsH}
}

// ScaleX returns how many cells one world unit spans horizontally.
func (v Viewport) ScaleX() float64 {
	if v.WorldW <= 0 {
		return 0
	}
	return float64(v.CellsW) / v.WorldW
}

// ScaleY returns how many cells one world unit spans vertically.
func (v Viewport) ScaleY() float64 {
	if v.WorldH <= 0 {
		return 0
	}
	return float64(v.CellsH) / v.WorldH
}

// ToCell converts a world point to the cell containing it.
func (v Viewport) ToCell(x, y float64) (int, int) {
	cx := int(math.Floor(x * v.ScaleX()))
	cy := v.CellsH - 1 - int(math.Floor(y*v.ScaleY()))
	return cx, cy
}

// RectToCells converts a world rectangle (x, y is the bottom-left corner) to
// the covering cell rectangle. Non-empty world rectangles cover at least one cell.
func (v Viewport) RectToCells(x, y, w, h float64) Rect {
	left := int(math.Floor(x * v.ScaleX()))
	right := int(math.Ceil((x + w) * v.ScaleX()))
	top := v.CellsH - int(math.Ceil((y+h)*v.ScaleY()))
	bottom := v.CellsH - int(math.Floor(y*v.ScaleY()))
	if w > 0 && right <= left {
		right = left + 1
	}
	if h > 0 && bottom <= top {
		bottom = top + 1
	}
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
