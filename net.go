package nurbs

import (
	"fmt"
	"math"
)

// MaxOrder is the largest order (degree + 1) accepted in either parametric
// direction of a surface.
const MaxOrder = 10

// Direction selects one of the two parametric directions of a tensor product
// surface.
type Direction int

const (
	DirU Direction = iota
	DirV
)

// Other returns the complementary direction.
func (d Direction) Other() Direction {
	return 1 - d
}

func (d Direction) String() string {
	switch d {
	case DirU:
		return "u"
	case DirV:
		return "v"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ctrlPoint is implemented by control point types that support the affine
// combinations needed for knot insertion.
type ctrlPoint[P any] interface {
	Lerp(o P, t float64) P
}

// Net is the control net of a tensor product B-spline surface with control
// points of type P.
//
// Points are stored in u-major order: the point with index i in the u
// direction and j in the v direction is Points[i*Size[1]+j]. Knot vectors
// are clamped, and sub-nets produced by Split and Region keep the parameter
// values of the net they were cut from.
type Net[P ctrlPoint[P]] struct {
	Order  [2]int
	Knots  [2]KnotVector
	Size   [2]int
	Points []P
}

// At returns the control point with index i in the u direction and j in the
// v direction.
func (n *Net[P]) At(i, j int) P {
	return n.Points[i*n.Size[1]+j]
}

// index returns the position in Points of the k-th point of the given line
// running in direction dir.
func (n *Net[P]) index(dir Direction, line, k int) int {
	if dir == DirU {
		return k*n.Size[1] + line
	}
	return line*n.Size[1] + k
}

// Domain returns the parameter range in direction dir.
func (n *Net[P]) Domain(dir Direction) (lo, hi float64) {
	return n.Knots[dir].Domain()
}

// Width returns the length of the parameter range in direction dir.
func (n *Net[P]) Width(dir Direction) float64 {
	lo, hi := n.Domain(dir)
	return hi - lo
}

// Mid returns the center of the parameter domain.
func (n *Net[P]) Mid() (u, v float64) {
	u0, u1 := n.Domain(DirU)
	v0, v1 := n.Domain(DirV)
	return 0.5 * (u0 + u1), 0.5 * (v0 + v1)
}

func (n *Net[P]) Clone() *Net[P] {
	return &Net[P]{
		Order:  n.Order,
		Knots:  [2]KnotVector{n.Knots[0].Clone(), n.Knots[1].Clone()},
		Size:   n.Size,
		Points: append([]P(nil), n.Points...),
	}
}

// Validate checks that orders, knot vectors and the control net agree.
func (n *Net[P]) Validate() error {
	for _, d := range [...]Direction{DirU, DirV} {
		if n.Order[d] > MaxOrder {
			return fmt.Errorf("order %d in %v exceeds %d: %w", n.Order[d], d, MaxOrder, ErrUnsupportedOrder)
		}
		if err := n.Knots[d].Validate(n.Order[d], n.Size[d]); err != nil {
			return fmt.Errorf("%v knots: %v: %w", d, err, ErrInvalidSurface)
		}
	}
	if len(n.Points) != n.Size[0]*n.Size[1] {
		return fmt.Errorf("got %d control points for a %d×%d net: %w",
			len(n.Points), n.Size[0], n.Size[1], ErrInvalidSurface)
	}
	return nil
}

// insertKnot inserts t once into the knot vector of a curve of the given
// degree, returning the new control points and knots. This is Boehm's
// algorithm; inputs are not modified.
func insertKnot[P ctrlPoint[P]](degree int, kv KnotVector, pts []P, t float64) ([]P, KnotVector) {
	k := kv.Span(degree, t)
	out := make([]P, len(pts)+1)
	for i := range out {
		switch {
		case i <= k-degree:
			out[i] = pts[i]
		case i <= k:
			a := (t - kv[i]) / (kv[i+degree] - kv[i])
			out[i] = pts[i-1].Lerp(pts[i], a)
		default:
			out[i] = pts[i-1]
		}
	}
	nkv := make(KnotVector, 0, len(kv)+1)
	nkv = append(nkv, kv[:k+1]...)
	nkv = append(nkv, t)
	nkv = append(nkv, kv[k+1:]...)
	return out, nkv
}

// InsertKnot inserts the knot t into direction dir the given number of times
// and returns the refined net. The surface it describes is unchanged.
func (n *Net[P]) InsertKnot(dir Direction, t float64, times int) *Net[P] {
	if times <= 0 {
		return n.Clone()
	}
	degree := n.Order[dir] - 1
	count := n.Size[dir]
	out := &Net[P]{
		Order: n.Order,
		Knots: [2]KnotVector{n.Knots[0].Clone(), n.Knots[1].Clone()},
		Size:  n.Size,
	}
	out.Size[dir] = count + times
	out.Points = make([]P, out.Size[0]*out.Size[1])

	line := make([]P, count)
	for l := range n.Size[dir.Other()] {
		for k := range count {
			line[k] = n.Points[n.index(dir, l, k)]
		}
		pts, kv := line, n.Knots[dir]
		for range times {
			pts, kv = insertKnot(degree, kv, pts, t)
		}
		for k, pt := range pts {
			out.Points[out.index(dir, l, k)] = pt
		}
		out.Knots[dir] = kv
	}
	return out
}

// Split cuts the net at parameter t in direction dir into two nets that
// together describe the same surface. t must lie strictly inside the
// domain.
func (n *Net[P]) Split(dir Direction, t float64) (*Net[P], *Net[P], error) {
	kv := n.Knots[dir]
	lo, hi := kv.Domain()
	if !(t > lo && t < hi) {
		return nil, nil, fmt.Errorf("split %v at %g outside (%g, %g): %w", dir, t, lo, hi, ErrParameterRange)
	}
	degree := n.Order[dir] - 1
	if degree < 1 {
		return nil, nil, fmt.Errorf("split %v of a net of order %d: %w", dir, n.Order[dir], ErrUnsupportedOrder)
	}
	t = kv.snap(t)
	have := kv.Multiplicity(t)
	ref := n.InsertKnot(dir, t, max(degree-have, 0))

	// After refinement, t occurs m ≥ degree times starting at index k.
	rkv := ref.Knots[dir]
	eps := rkv.eps()
	k := 0
	for k < len(rkv) && math.Abs(rkv[k]-t) > eps {
		k++
	}
	if k == len(rkv) {
		return nil, nil, fmt.Errorf("split %v at %g: knot missing after insertion: %w", dir, t, ErrInvalidSurface)
	}
	m := 0
	for k+m < len(rkv) && math.Abs(rkv[k+m]-t) <= eps {
		m++
	}

	order := degree + 1
	leftKnots := make(KnotVector, 0, k+order)
	leftKnots = append(leftKnots, rkv[:k]...)
	rightKnots := make(KnotVector, 0, order+len(rkv)-k-m)
	for range order {
		leftKnots = append(leftKnots, t)
		rightKnots = append(rightKnots, t)
	}
	rightKnots = append(rightKnots, rkv[k+m:]...)

	left := ref.slice(dir, 0, k, leftKnots)
	right := ref.slice(dir, k+m-order, ref.Size[dir], rightKnots)
	return left, right, nil
}

// Region returns the part of the net between t0 and t1 in direction dir.
// The parameters are clamped to the domain.
func (n *Net[P]) Region(dir Direction, t0, t1 float64) (*Net[P], error) {
	kv := n.Knots[dir]
	lo, hi := kv.Domain()
	eps := kv.eps()
	t0 = max(t0, lo)
	t1 = min(t1, hi)
	if !(t1-t0 > eps) {
		return nil, fmt.Errorf("region %v [%g, %g] within (%g, %g): %w", dir, t0, t1, lo, hi, ErrParameterRange)
	}
	out := n
	var err error
	if t0 > lo+eps {
		if _, out, err = out.Split(dir, t0); err != nil {
			return nil, err
		}
	}
	if t1 < hi-eps {
		if out, _, err = out.Split(dir, t1); err != nil {
			return nil, err
		}
	}
	if out == n {
		out = n.Clone()
	}
	return out, nil
}

// slice returns the sub-net made of the lines from through to-1 in
// direction dir, with the given knot vector for that direction.
func (n *Net[P]) slice(dir Direction, from, to int, kv KnotVector) *Net[P] {
	out := &Net[P]{
		Order: n.Order,
		Knots: [2]KnotVector{n.Knots[0].Clone(), n.Knots[1].Clone()},
		Size:  n.Size,
	}
	out.Knots[dir] = kv
	out.Size[dir] = to - from
	out.Points = make([]P, out.Size[0]*out.Size[1])
	for l := range n.Size[dir.Other()] {
		for k := from; k < to; k++ {
			out.Points[out.index(dir, l, k-from)] = n.Points[n.index(dir, l, k)]
		}
	}
	return out
}

// SplitParam returns where to split the net in direction dir: the middle
// interior knot if there is one, so that pieces tend towards single
// polynomial patches, and the middle of the domain otherwise.
func (n *Net[P]) SplitParam(dir Direction) float64 {
	if in := n.Knots[dir].interior(); len(in) > 0 {
		return in[len(in)/2]
	}
	lo, hi := n.Domain(dir)
	return 0.5 * (lo + hi)
}
