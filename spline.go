package nurbs

import "fmt"

// Spline is a non-rational B-spline curve in the plane with a clamped knot
// vector.
type Spline struct {
	Order  int
	Knots  KnotVector
	Points []Point
}

// NewSpline returns the spline with the given order, knot vector and
// control points.
func NewSpline(order int, knots KnotVector, points []Point) (*Spline, error) {
	s := &Spline{
		Order:  order,
		Knots:  knots.Clone(),
		Points: append([]Point(nil), points...),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Spline) Validate() error {
	if s.Order < 2 || s.Order > MaxOrder {
		return fmt.Errorf("nurbs: spline order %d outside [2, %d]: %w", s.Order, MaxOrder, ErrUnsupportedOrder)
	}
	if err := s.Knots.Validate(s.Order, len(s.Points)); err != nil {
		return fmt.Errorf("nurbs: spline knots: %v: %w", err, ErrInvalidSurface)
	}
	for k, p := range s.Points {
		if !p.isFinite() {
			return fmt.Errorf("nurbs: spline control point %d is %v: %w", k, p, ErrInvalidSurface)
		}
	}
	return nil
}

// Eval returns the point of the spline at t. Parameters outside the domain
// are clamped to it.
func (s *Spline) Eval(t float64) Point {
	lo, hi := s.Knots.Domain()
	t = min(max(t, lo), hi)
	p := s.Order - 1
	span := s.Knots.Span(p, t)
	var buf [MaxOrder]float64
	var out Point
	for a, n := range basisFuncs(buf[:], span, t, p, s.Knots) {
		c := s.Points[span-p+a]
		out.X += n * c.X
		out.Y += n * c.Y
	}
	return out
}

// net returns the spline as a control net that is one point wide in v.
func (s *Spline) net() *Net[Point] {
	return &Net[Point]{
		Order:  [2]int{s.Order, 1},
		Knots:  [2]KnotVector{s.Knots.Clone(), BezierKnots(1)},
		Size:   [2]int{len(s.Points), 1},
		Points: append([]Point(nil), s.Points...),
	}
}

// Beziers decomposes the spline into its polynomial pieces, in order. Each
// piece is parametrized over [0, 1].
func (s *Spline) Beziers() []BezierCurve {
	var out []BezierCurve
	rest := s.net()
	for _, t := range s.Knots.interior() {
		left, right, err := rest.Split(DirU, t)
		if err != nil {
			panic(fmt.Sprintf("splitting valid spline at interior knot %g: %v", t, err))
		}
		out = append(out, BezierCurve(left.Points))
		rest = right
	}
	return append(out, BezierCurve(rest.Points))
}

// FindRoots returns the crossings of the spline with the line of the ray, in
// curve order. A crossing at the joint of two pieces is reported once.
func (s *Spline) FindRoots(ray Ray2, epsilon float64) []Root {
	return s.FindRootsTol(ray, NewTolerance(epsilon, DefaultTolerance.Perp))
}

// FindRootsTol is like [Spline.FindRoots], but takes the full tolerance.
func (s *Spline) FindRootsTol(ray Ray2, tol Tolerance) []Root {
	var out []Root
	for _, bez := range s.Beziers() {
		for i, r := range FindRootsTol(bez, ray, tol) {
			if i == 0 && len(out) > 0 && out[len(out)-1].Point.Distance(r.Point) <= tol.Dist {
				continue
			}
			out = append(out, r)
		}
	}
	return out
}
