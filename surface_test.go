package nurbs

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

func bilinearPatch(t testing.TB) *Surface {
	t.Helper()
	s, err := NewBezierSurface([][]vec3.T{
		{{0, 0, 0}, {0, 1, 0}},
		{{1, 0, 0}, {1, 1, 0}},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// quarterCylinder returns the rational surface x² + y² = 1, x, y ≥ 0,
// 0 ≤ z ≤ 2. u runs around the axis and v along it.
func quarterCylinder(t testing.TB) *Surface {
	t.Helper()
	w := math.Sqrt2 / 2
	s, err := NewBezierSurface([][]vec3.T{
		{{1, 0, 0}, {1, 0, 2}},
		{{1, 1, 0}, {1, 1, 2}},
		{{0, 1, 0}, {0, 1, 2}},
	}, [][]float64{
		{1, 1},
		{w, w},
		{1, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

var approx = cmpopts.EquateApprox(0, 1e-12)

func TestSurfaceEvalBilinear(t *testing.T) {
	s := bilinearPatch(t)
	diff(t, s.Eval(0.3, 0.7), vec3.T{0.3, 0.7, 0}, approx)
	diff(t, s.Eval(0, 0), vec3.T{0, 0, 0}, approx)
	diff(t, s.Eval(1, 1), vec3.T{1, 1, 0}, approx)
	// Outside the domain, parameters are clamped.
	diff(t, s.Eval(-1, 2), vec3.T{0, 1, 0}, approx)
}

func TestSurfaceEvalRational(t *testing.T) {
	s := quarterCylinder(t)
	if !s.Rational {
		t.Error("surface with weights is not rational")
	}
	for i := range 11 {
		u := float64(i) / 10
		p := s.Eval(u, 0.25)
		if r := math.Hypot(p[0], p[1]); math.Abs(r-1) > 1e-12 {
			t.Errorf("point %v at u = %g is %g from the axis", p, u, r)
		}
		if math.Abs(p[2]-0.5) > 1e-12 {
			t.Errorf("point %v at v = 0.25 has the wrong height", p)
		}
	}
	diff(t, s.Eval(0.5, 0), vec3.T{math.Sqrt2 / 2, math.Sqrt2 / 2, 0}, approx)
}

func TestSurfaceDerivatives(t *testing.T) {
	const h = 1e-6
	for _, s := range []*Surface{bilinearPatch(t), quarterCylinder(t)} {
		for _, uv := range [][2]float64{{0.2, 0.3}, {0.5, 0.5}, {0.8, 0.1}} {
			u, v := uv[0], uv[1]
			_, su, sv := s.Derivatives(u, v)
			pu0, pu1 := s.Eval(u-h, v), s.Eval(u+h, v)
			pv0, pv1 := s.Eval(u, v-h), s.Eval(u, v+h)
			du := vec3.Sub(&pu1, &pu0)
			dv := vec3.Sub(&pv1, &pv0)
			diff(t, su, du.Scaled(1/(2*h)), cmpopts.EquateApprox(0, 1e-6))
			diff(t, sv, dv.Scaled(1/(2*h)), cmpopts.EquateApprox(0, 1e-6))
		}
	}
}

func TestSurfaceNormal(t *testing.T) {
	diff(t, bilinearPatch(t).Normal(0.4, 0.4), vec3.T{0, 0, 1}, approx)

	s := quarterCylinder(t)
	p := s.Eval(0.3, 0.5)
	n := s.Normal(0.3, 0.5)
	// The normal of a cylinder points along the radius.
	radial := vec3.T{p[0], p[1], 0}
	radial.Normalize()
	if d := math.Abs(vec3.Dot(&n, &radial)); math.Abs(d-1) > 1e-9 {
		t.Errorf("normal %v is not radial at %v", n, p)
	}
}

func TestNewSurfaceErrors(t *testing.T) {
	pts := [][]vec3.T{
		{{0, 0, 0}, {0, 1, 0}},
		{{1, 0, 0}, {1, 1, 0}},
	}
	tests := []struct {
		name    string
		orderU  int
		knotsU  KnotVector
		points  [][]vec3.T
		weights [][]float64
		want    error
	}{
		{"empty", 2, BezierKnots(2), nil, nil, ErrInvalidSurface},
		{"ragged", 2, BezierKnots(2), [][]vec3.T{pts[0], pts[1][:1]}, nil, ErrInvalidSurface},
		{"weight rows", 2, BezierKnots(2), pts, [][]float64{{1, 1}}, ErrInvalidSurface},
		{"weight columns", 2, BezierKnots(2), pts, [][]float64{{1, 1}, {1}}, ErrInvalidSurface},
		{"zero weight", 2, BezierKnots(2), pts, [][]float64{{1, 1}, {0, 1}}, ErrInvalidSurface},
		{"negative weight", 2, BezierKnots(2), pts, [][]float64{{1, 1}, {1, -2}}, ErrInvalidSurface},
		{"not finite", 2, BezierKnots(2), [][]vec3.T{pts[0], {{math.NaN(), 0, 0}, {1, 1, 0}}}, nil, ErrInvalidSurface},
		{"knots", 2, KnotVector{0, 0, 1}, pts, nil, ErrInvalidSurface},
		{"order 1", 1, KnotVector{0, 0.5, 1}, pts, nil, ErrUnsupportedOrder},
		{"order", MaxOrder + 1, BezierKnots(MaxOrder + 1), pts, nil, ErrUnsupportedOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSurface(tt.orderU, 2, tt.knotsU, BezierKnots(2), tt.points, tt.weights)
			if !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSurfaceBounds(t *testing.T) {
	lo, hi := quarterCylinder(t).Bounds()
	diff(t, lo, vec3.T{0, 0, 0}, approx)
	diff(t, hi, vec3.T{1, 1, 2}, approx)
}

func TestSurfaceTransform(t *testing.T) {
	s := quarterCylinder(t)
	m := mat4.T{
		{2, 0, 0, 0},
		{0, 3, 0, 0},
		{0, 0, 4, 0},
		{0, 0, 0, 1},
	}
	ts := s.Transform(&m)
	for _, uv := range [][2]float64{{0, 0}, {0.3, 0.6}, {1, 1}} {
		p := s.Eval(uv[0], uv[1])
		diff(t, ts.Eval(uv[0], uv[1]), vec3.T{2 * p[0], 3 * p[1], 4 * p[2]}, approx)
	}
	// The input is left alone.
	diff(t, s, quarterCylinder(t))
}

func TestSurfaceProject(t *testing.T) {
	s := quarterCylinder(t)
	p1 := Plane{Normal: vec3.T{1, 0, 0}, D: 0.5}
	p2 := Plane{Normal: vec3.T{0, 0, 1}, D: 1}
	ps := s.Project(p1, p2)
	if err := ps.Validate(); err != nil {
		t.Fatal(err)
	}
	// Projected coordinates are distances scaled by the weight.
	for k, hp := range s.Points {
		c := hp.Dehomogenized()
		want := Pt(p1.Distance(c)*hp.W, p2.Distance(c)*hp.W)
		diff(t, ps.Points[k], want, approx)
	}
	if ps.Size != s.Size || ps.Order != s.Order {
		t.Errorf("projection changed the net layout")
	}
}

func TestHomPoint(t *testing.T) {
	a := Weighted(vec3.T{1, 2, 3}, 2)
	diff(t, a, HomPoint{vec3.T{2, 4, 6}, 2})
	diff(t, a.Dehomogenized(), vec3.T{1, 2, 3})
	b := Weighted(vec3.T{0, 0, 0}, 1)
	diff(t, a.Lerp(b, 0.5), HomPoint{vec3.T{1, 2, 3}, 1.5})
}
