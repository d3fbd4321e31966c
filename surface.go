package nurbs

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

// Surface is a tensor product NURBS surface. Control points are stored in
// homogeneous form; for a non-rational surface every weight is 1.
type Surface struct {
	Net[HomPoint]
	Rational bool
}

// NewSurface returns the surface with the given orders, knot vectors and
// control points. points[i][j] is the control point with index i in the u
// direction and j in the v direction. weights has the same shape as points;
// a nil weights makes the surface non-rational.
func NewSurface(orderU, orderV int, knotsU, knotsV KnotVector, points [][]vec3.T, weights [][]float64) (*Surface, error) {
	if len(points) == 0 || len(points[0]) == 0 {
		return nil, fmt.Errorf("nurbs: empty control net: %w", ErrInvalidSurface)
	}
	if weights != nil && len(weights) != len(points) {
		return nil, fmt.Errorf("nurbs: %d weight rows for %d control point rows: %w",
			len(weights), len(points), ErrInvalidSurface)
	}
	nu, nv := len(points), len(points[0])
	s := &Surface{
		Net: Net[HomPoint]{
			Order:  [2]int{orderU, orderV},
			Knots:  [2]KnotVector{knotsU.Clone(), knotsV.Clone()},
			Size:   [2]int{nu, nv},
			Points: make([]HomPoint, 0, nu*nv),
		},
		Rational: weights != nil,
	}
	for i, row := range points {
		if len(row) != nv {
			return nil, fmt.Errorf("nurbs: control point row %d has %d points, want %d: %w",
				i, len(row), nv, ErrInvalidSurface)
		}
		if weights != nil && len(weights[i]) != nv {
			return nil, fmt.Errorf("nurbs: weight row %d has %d weights, want %d: %w",
				i, len(weights[i]), nv, ErrInvalidSurface)
		}
		for j, pt := range row {
			w := 1.0
			if weights != nil {
				w = weights[i][j]
			}
			s.Points = append(s.Points, Weighted(pt, w))
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewBezierSurface returns the Bézier patch over [0, 1]² with the given
// control points and optional weights.
func NewBezierSurface(points [][]vec3.T, weights [][]float64) (*Surface, error) {
	if len(points) == 0 || len(points[0]) == 0 {
		return nil, fmt.Errorf("nurbs: empty control net: %w", ErrInvalidSurface)
	}
	nu, nv := len(points), len(points[0])
	return NewSurface(nu, nv, BezierKnots(nu), BezierKnots(nv), points, weights)
}

// Validate checks the control net and that all weights are positive and all
// coordinates finite.
func (s *Surface) Validate() error {
	if err := s.Net.Validate(); err != nil {
		return fmt.Errorf("nurbs: %w", err)
	}
	for _, d := range [...]Direction{DirU, DirV} {
		if s.Order[d] < 2 {
			return fmt.Errorf("nurbs: order %d in %v is below 2: %w", s.Order[d], d, ErrUnsupportedOrder)
		}
	}
	for k, p := range s.Points {
		if !(p.W > 0) || math.IsInf(p.W, 0) {
			return fmt.Errorf("nurbs: control point %d has weight %g: %w", k, p.W, ErrInvalidSurface)
		}
		for _, c := range p.Vec {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("nurbs: control point %d is not finite: %w", k, ErrInvalidSurface)
			}
		}
	}
	return nil
}

// clampParam restricts t to the domain of direction dir.
func (s *Surface) clampParam(dir Direction, t float64) float64 {
	lo, hi := s.Domain(dir)
	return min(max(t, lo), hi)
}

// homogeneous evaluates the homogeneous surface and, if derivs is set, its
// partial derivatives at (u, v).
func (s *Surface) homogeneous(u, v float64, derivs bool) (pt, du, dv HomPoint) {
	u = s.clampParam(DirU, u)
	v = s.clampParam(DirV, v)
	p, q := s.Order[0]-1, s.Order[1]-1
	su := s.Knots[0].Span(p, u)
	sv := s.Knots[1].Span(q, v)

	var nbuf, mbuf, ndbuf, mdbuf [MaxOrder]float64
	nu := basisFuncs(nbuf[:], su, u, p, s.Knots[0])
	nv := basisFuncs(mbuf[:], sv, v, q, s.Knots[1])
	var ndu, ndv []float64
	if derivs {
		ndu = basisDerivs(ndbuf[:], su, u, p, s.Knots[0])
		ndv = basisDerivs(mdbuf[:], sv, v, q, s.Knots[1])
	}

	add := func(dst *HomPoint, c HomPoint, f float64) {
		dst.Vec[0] += c.Vec[0] * f
		dst.Vec[1] += c.Vec[1] * f
		dst.Vec[2] += c.Vec[2] * f
		dst.W += c.W * f
	}
	for a := range nu {
		for b := range nv {
			c := s.At(su-p+a, sv-q+b)
			add(&pt, c, nu[a]*nv[b])
			if derivs {
				add(&du, c, ndu[a]*nv[b])
				add(&dv, c, nu[a]*ndv[b])
			}
		}
	}
	return pt, du, dv
}

// Eval returns the point of the surface at (u, v). Parameters outside the
// domain are clamped to it.
func (s *Surface) Eval(u, v float64) vec3.T {
	pt, _, _ := s.homogeneous(u, v, false)
	return pt.Dehomogenized()
}

// Derivatives returns the point of the surface at (u, v) and its first
// partial derivatives.
func (s *Surface) Derivatives(u, v float64) (pt, su, sv vec3.T) {
	a, au, av := s.homogeneous(u, v, true)
	pt = a.Dehomogenized()
	// Quotient rule: S' = (A' − w'·S) / w.
	deriv := func(d HomPoint) vec3.T {
		t := pt.Scaled(d.W)
		r := vec3.Sub(&d.Vec, &t)
		return r.Scaled(1 / a.W)
	}
	return pt, deriv(au), deriv(av)
}

// Normal returns the unit normal of the surface at (u, v), the normalized
// cross product of the partial derivatives in u and v. At singular points
// the zero vector is returned.
func (s *Surface) Normal(u, v float64) vec3.T {
	_, su, sv := s.Derivatives(u, v)
	n := vec3.Cross(&su, &sv)
	if l := n.Length(); l > 0 {
		return n.Scaled(1 / l)
	}
	return vec3.Zero
}

// Bounds returns the bounding box of the dehomogenized control points, which
// contains the surface.
func (s *Surface) Bounds() (lo, hi vec3.T) {
	lo = vec3.T{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = vec3.T{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range s.Points {
		c := p.Dehomogenized()
		for k := range c {
			lo[k] = min(lo[k], c[k])
			hi[k] = max(hi[k], c[k])
		}
	}
	return lo, hi
}

// Transform returns the surface with the affine transformation m applied to
// its control points. Weights are kept.
func (s *Surface) Transform(m *mat4.T) *Surface {
	out := &Surface{Net: *s.Clone(), Rational: s.Rational}
	for k, p := range out.Points {
		c := p.Dehomogenized()
		out.Points[k] = Weighted(m.MulVec3(&c), p.W)
	}
	return out
}

// Project maps the surface to the plane: the coordinates of a control point
// are its signed distances to p1 and p2, scaled by its weight. The zeros of
// the projected surface are the points of s that lie on both planes.
func (s *Surface) Project(p1, p2 Plane) *ProjectedSurface {
	out := &ProjectedSurface{
		Order:  s.Order,
		Knots:  [2]KnotVector{s.Knots[0].Clone(), s.Knots[1].Clone()},
		Size:   s.Size,
		Points: make([]Point, len(s.Points)),
	}
	for k, p := range s.Points {
		out.Points[k] = Point{
			X: vec3.Dot(&p1.Normal, &p.Vec) - p1.D*p.W,
			Y: vec3.Dot(&p2.Normal, &p.Vec) - p2.D*p.W,
		}
	}
	return out
}

// ProjectedSurface is a surface projected to the plane by [Surface.Project].
type ProjectedSurface = Net[Point]
