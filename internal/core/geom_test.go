package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent horizontal (no overlap)", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestViewportToCell(t *testing.T) {
	// 200x100 world on an 80x20 grid: 0.4 cells per unit across, 0.2 up.
	v := NewViewport(200, 100, 80, 20)

	tests := []struct {
		name   string
		x, y   float64
		cx, cy int
	}{
		{"origin is bottom left", 0, 0, 0, 19},
		{"top right corner", 199, 99, 79, 0},
		{"middle", 100, 50, 40, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cx, cy := v.ToCell(tc.x, tc.y)
			if cx != tc.cx || cy != tc.cy {
				t.Errorf("ToCell(%v, %v) = (%d, %d), expected (%d, %d)", tc.x, tc.y, cx, cy, tc.cx, tc.cy)
			}
		})
	}
}

func TestViewportRectToCells(t *testing.T) {
	v := NewViewport(200, 100, 80, 20)

	r := v.RectToCells(0, 0, 200, 100)
	if r != NewRect(0, 0, 80, 20) {
		t.Errorf("full world should cover the grid, got %+v", r)
	}

	// A tiny rectangle still covers one cell.
	r = v.RectToCells(10, 10, 0.5, 0.5)
	if r.W < 1 || r.H < 1 {
		t.Errorf("tiny rect should cover at least one cell, got %+v", r)
	}

	// Ground-anchored box of height 50 covers the bottom half.
	r = v.RectToCells(0, 0, 10, 50)
	if r.Y != 10 || r.Bottom() != 20 {
		t.Errorf("ground box rows = [%d, %d), expected [10, 20)", r.Y, r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(-1.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-1.5, 0, 1) = %v, expected 0", got)
	}
}
