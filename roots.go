package nurbs

import "math"

// MaxDepth bounds the recursion of [FindRoots] and [Subdivide]. A curve
// halved MaxDepth times is far below the resolution of float64 parameters.
const MaxDepth = 64

// Ray2 is a ray in the plane. Roots are found on the infinite line through
// the ray; callers use [Ray2.Param] to discard those behind the start.
type Ray2 struct {
	Start Point
	// Dir is the unit direction of the ray.
	Dir Vec2
	// Perp is the unit normal of the ray, Dir.Perp().
	Perp Vec2
}

// NewRay2 returns a ray starting at start and pointing along dir. dir does
// not need to be normalized.
func NewRay2(start Point, dir Vec2) Ray2 {
	d := dir.Normalize()
	return Ray2{
		Start: start,
		Dir:   d,
		Perp:  d.Perp(),
	}
}

// At returns the point at signed distance t along the ray.
func (r Ray2) At(t float64) Point {
	return r.Start.Translate(r.Dir.Mul(t))
}

// Param returns the signed distance along the ray of the orthogonal
// projection of p onto the ray's line.
func (r Ray2) Param(p Point) float64 {
	return p.Sub(r.Start).Dot(r.Dir)
}

// frame maps p into the ray's coordinate frame, with the x axis along the
// ray and the y axis along its normal.
func (r Ray2) frame(p Point) Point {
	v := p.Sub(r.Start)
	return Point{X: v.Dot(r.Dir), Y: v.Dot(r.Perp)}
}

// Root is a crossing of a curve with a ray.
type Root struct {
	Point Point
	// Normal is the unit normal of the curve at the root; see
	// [BezierCurve.Normal] for its orientation.
	Normal Vec2
	// Depth is the number of subdivisions that isolated the root.
	Depth int
	// Approximate is set when the recursion limit was reached before the
	// sub-curve became flat enough. Such a root is the midpoint of a
	// sub-curve that the ray crosses and is less accurate than epsilon.
	Approximate bool
}

// FindRoots returns the points where the curve crosses the line of the ray.
//
// The curve is subdivided until every piece is either provably free of
// crossings, crossed once and flat to within epsilon, or subdivided
// [MaxDepth] times. Roots are reported in curve order.
//
// The number of crossings of a piece is estimated from the sign changes of
// its control polygon. Tangential contacts that don't change sign are not
// reported.
//
// FindRoots is [FindRootsTol] with epsilon as the distance tolerance and the
// angular tolerance of [DefaultTolerance].
func FindRoots(c BezierCurve, ray Ray2, epsilon float64) []Root {
	return FindRootsTol(c, ray, NewTolerance(epsilon, DefaultTolerance.Perp))
}

// FindRootsTol is like [FindRoots], but takes the full tolerance. Pieces are
// flat when they bracket their crossing to within tol.Dist, and tol.Perp
// decides when a chord runs parallel to the ray.
func FindRootsTol(c BezierCurve, ray Ray2, tol Tolerance) []Root {
	if len(c) < 2 {
		return nil
	}
	return findRoots(nil, c, ray, tol, 0)
}

func findRoots(dst []Root, c BezierCurve, ray Ray2, tol Tolerance, depth int) []Root {
	switch n := crossingCount(c, ray); {
	case n == 0:
		return dst
	case depth >= MaxDepth:
		return append(dst, Root{
			Point:       c.Eval(0.5),
			Normal:      c.Normal(0.5),
			Depth:       depth,
			Approximate: true,
		})
	case n == 1 && flatEnough(c, ray, tol.Dist):
		if r, ok := xIntercept(c, ray, tol); ok {
			r.Depth = depth
			dst = append(dst, r)
		}
		return dst
	}

	left, right := c.Subdivide(0.5)
	dst = findRoots(dst, left, ray, tol, depth+1)
	return findRoots(dst, right, ray, tol, depth+1)
}

// crossingCount returns the number of sign changes of the control polygon
// with respect to the ray. A point on the ray counts as being on its
// positive side.
func crossingCount(c BezierCurve, ray Ray2) int {
	side := func(p Point) bool {
		return ray.Start.Sub(p).Dot(ray.Perp) < 0
	}
	n := 0
	prev := side(c[0])
	for _, p := range c[1:] {
		s := side(p)
		if s != prev {
			n++
		}
		prev = s
	}
	return n
}

// chordBand computes the normalized implicit line ax + by + c = 0 through the
// first and last point of pts and the largest signed distances of the
// interior points above (≥ 0) and below (≤ 0) it. ok is false if the first
// and last point coincide.
func chordBand(pts []Point) (a, b, c, above, below float64, ok bool) {
	p0, pn := pts[0], pts[len(pts)-1]
	a = p0.Y - pn.Y
	b = pn.X - p0.X
	l := math.Hypot(a, b)
	if l == 0 {
		return 0, 0, 0, 0, 0, false
	}
	a /= l
	b /= l
	c = -(a*p0.X + b*p0.Y)
	for _, p := range pts[1 : len(pts)-1] {
		d := a*p.X + b*p.Y + c
		above = max(above, d)
		below = min(below, d)
	}
	return a, b, c, above, below, true
}

// flatEnough reports whether the crossing of c with the ray is bracketed to
// within epsilon by the chord band of its control polygon.
//
// In the ray's frame, the curve lies between two lines parallel to the
// chord, offset by the largest distances of the control points on either
// side. Where these lines cross the ray bounds where the curve can cross
// it. A chord that is degenerate or parallel to the ray bounds nothing and
// the curve is not flat.
func flatEnough(c BezierCurve, ray Ray2, epsilon float64) bool {
	var buf [8]Point
	pts := buf[:0]
	for _, p := range c {
		pts = append(pts, ray.frame(p))
	}
	a, _, c0, above, below, ok := chordBand(pts)
	if !ok || math.Abs(a) < 1e-12 {
		return false
	}
	x1 := (above - c0) / a
	x2 := (below - c0) / a
	left, right := min(x1, x2), max(x1, x2)
	return (right-left)*0.5 < epsilon
}

// xIntercept intersects the chord of c with the ray's line.
func xIntercept(c BezierCurve, ray Ray2, tol Tolerance) (Root, bool) {
	chord := c.Chord()
	normal := chord.P1.Sub(chord.P0).Perp().Normalize()
	kind, t := IntersectLineSegment(ray.Start, ray.Dir, chord, tol)
	switch kind {
	case HitStart:
		return Root{Point: chord.P0, Normal: normal}, true
	case HitEnd:
		return Root{Point: chord.P1, Normal: normal}, true
	case HitInterior:
		return Root{Point: chord.Eval(t), Normal: normal}, true
	default:
		return Root{}, false
	}
}
