package core

import "math"

// Rect is an axis-aligned block of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(r.W-2*n, 0), H: max(r.H-2*n, 0)}
}

// Viewport maps a rectangle of a continuous plane onto screen cells.
// U grows to the right and V grows down the screen.
type Viewport struct {
	MinU, MaxU float64
	MinV, MaxV float64
	Area       Rect
}

// Project returns the cell for plane point (u, v) and whether it lies
// inside the viewport area.
func (vp Viewport) Project(u, v float64) (x, y int, ok bool) {
	if vp.MaxU <= vp.MinU || vp.MaxV <= vp.MinV || vp.Area.W <= 0 || vp.Area.H <= 0 {
		return 0, 0, false
	}
	fx := (u - vp.MinU) / (vp.MaxU - vp.MinU)
	fy := (v - vp.MinV) / (vp.MaxV - vp.MinV)
	x = vp.Area.X + int(math.Floor(fx*float64(vp.Area.W)))
	y = vp.Area.Y + int(math.Floor(fy*float64(vp.Area.H)))

	// The far edges belong to the last cell.
	if fx == 1 {
		x--
	}
	if fy == 1 {
		y--
	}
	return x, y, vp.Area.Contains(x, y)
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

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
