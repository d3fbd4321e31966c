package nurbs

import "slices"

// BezierCurve is a planar Bézier curve of arbitrary degree, given by its
// control polygon. A curve of degree n has n+1 control points. The curve is
// parametrized over [0, 1].
//
// BezierCurve values are treated as immutable: subdivision returns new
// curves and never writes to the receiver.
type BezierCurve []Point

// Degree returns the degree of the curve, one less than the number of
// control points.
func (c BezierCurve) Degree() int {
	return len(c) - 1
}

func (c BezierCurve) Start() Point { return c[0] }
func (c BezierCurve) End() Point   { return c[len(c)-1] }

// Eval evaluates the curve at t using de Casteljau's algorithm. t is not
// restricted to [0, 1].
func (c BezierCurve) Eval(t float64) Point {
	if len(c) == 0 {
		panic("called with empty control polygon")
	}
	var buf [8]Point
	pts := append(buf[:0], c...)
	for n := len(pts) - 1; n > 0; n-- {
		for i := range n {
			pts[i] = pts[i].Lerp(pts[i+1], t)
		}
	}
	return pts[0]
}

// Evaluate evaluates the curve at t and also returns the two halves of the
// curve split at t. left[i] is the first point of the i-th de Casteljau
// pass, right[i] the last point of pass degree−i; both are complete
// Bézier curves of the same degree, reparametrized to [0, 1], and
// left[degree] == right[0] == the returned point.
func (c BezierCurve) Evaluate(t float64) (pt Point, left, right BezierCurve) {
	n := len(c)
	if n == 0 {
		panic("called with empty control polygon")
	}
	left = make(BezierCurve, n)
	right = make(BezierCurve, n)
	pts := slices.Clone(c)
	left[0] = pts[0]
	right[n-1] = pts[n-1]
	for pass := 1; pass < n; pass++ {
		for i := range n - pass {
			pts[i] = pts[i].Lerp(pts[i+1], t)
		}
		left[pass] = pts[0]
		right[n-1-pass] = pts[n-1-pass]
	}
	return pts[0], left, right
}

// Subdivide splits the curve at t.
func (c BezierCurve) Subdivide(t float64) (BezierCurve, BezierCurve) {
	_, l, r := c.Evaluate(t)
	return l, r
}

// Tangent returns the derivative of the curve at t.
func (c BezierCurve) Tangent(t float64) Vec2 {
	n := len(c) - 1
	if n < 1 {
		return Vec2{}
	}
	var buf [8]Point
	pts := append(buf[:0], c...)
	for m := n; m > 1; m-- {
		for i := range m {
			pts[i] = pts[i].Lerp(pts[i+1], t)
		}
	}
	return pts[1].Sub(pts[0]).Mul(float64(n))
}

// Normal returns the unit normal of the curve at t, which is the tangent
// rotated by [Vec2.Perp]. Where the tangent vanishes, the zero vector is
// returned.
func (c BezierCurve) Normal(t float64) Vec2 {
	return c.Tangent(t).Perp().Normalize()
}

// BoundingBox returns the bounding box of the control polygon, which
// contains the curve.
func (c BezierCurve) BoundingBox() Rect {
	return BoundingRect(c)
}

// Reverse returns the same curve traversed in the opposite direction.
func (c BezierCurve) Reverse() BezierCurve {
	out := slices.Clone(c)
	slices.Reverse(out)
	return out
}

// Chord returns the line from the curve's first to its last control point.
func (c BezierCurve) Chord() Line {
	return Line{c.Start(), c.End()}
}
