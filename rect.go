package nurbs

// Rect is an axis-aligned rectangle. The package uses it for the bounding
// boxes of control polygons and control nets.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// BoundingRect returns the smallest rectangle enclosing all points. It
// returns the zero rectangle for an empty slice.
func BoundingRect(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, pt := range pts[1:] {
		r = r.UnionPoint(pt)
	}
	return r
}

// Width returns the rectangle's width, defined as X1 − X0. It may be negative.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the rectangle's heigth, defined as Y1 − Y0. It may be negative.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Contains reports whether pt lies inside r or on its boundary, allowing a
// slack of tol in every direction.
//
// Unlike a half-open pixel test, the boundary is included: a control net
// whose box merely touches the origin may still pass through it.
func (r Rect) Contains(pt Point, tol float64) bool {
	return pt.X >= r.X0-tol &&
		pt.X <= r.X1+tol &&
		pt.Y >= r.Y0-tol &&
		pt.Y <= r.Y1+tol
}

// ContainsOrigin reports whether the origin lies within tol of r.
func (r Rect) ContainsOrigin(tol float64) bool {
	return r.Contains(Point{}, tol)
}

// UnionPoint computes the union with one point.
//
// This method includes the perimeter of zero-area rectangles.
// Thus, a succession of UnionPoint operations on a series of
// points yields their enclosing rectangle.
//
// Results are valid only if width and height are non-negative.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}
