// Package geometry computes and queries the vertical layout of variable-height
// rows.
//
// All lengths are content units. A table renders one unit per terminal cell at
// zoom 1; zoom only changes how the host maps content units to cells, never the
// geometry itself.
package geometry

import "fmt"

// Rect is an axis-aligned rectangle in content coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the exclusive right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Intersects reports whether r and o overlap. Edges are half-open, so two
// rectangles that only touch do not intersect, and an empty rectangle never
// intersects anything.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// WithWidth returns a copy of r with the given width.
func (r Rect) WithWidth(width float64) Rect {
	r.Width = width
	return r
}

// WithHeight returns a copy of r with the given height.
func (r Rect) WithHeight(height float64) Rect {
	r.Height = height
	return r
}

// Scale returns r with every component divided by zoom. Non-positive zoom
// values leave r untouched.
func (r Rect) Scale(zoom float64) Rect {
	if zoom <= 0 {
		return r
	}
	return Rect{X: r.X / zoom, Y: r.Y / zoom, Width: r.Width / zoom, Height: r.Height / zoom}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}
