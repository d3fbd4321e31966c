package nurbs

import (
	"fmt"
	"math"
	"sort"
)

// knotEpsilon is the relative distance below which two knots are considered
// equal.
const knotEpsilon = 1e-12

// KnotVector is a non-decreasing sequence of knot values.
type KnotVector []float64

func (kv KnotVector) Clone() KnotVector {
	return append(KnotVector(nil), kv...)
}

// Domain returns the first and last knot. For the clamped knot vectors used
// by this package, that is the parameter range of the curve or surface.
func (kv KnotVector) Domain() (lo, hi float64) {
	return kv[0], kv[len(kv)-1]
}

// Span returns the index k of the knot span containing t, with
// kv[k] ≤ t < kv[k+1], for a curve of the given degree. Parameters at or
// beyond the end of the domain map to the last non-empty span.
//
// This is algorithm A2.1 from The NURBS Book (Piegl & Tiller).
func (kv KnotVector) Span(degree int, t float64) int {
	n := len(kv) - degree - 2
	if t >= kv[n+1] {
		// Last non-empty span.
		for n > degree && kv[n] == kv[n+1] {
			n--
		}
		return n
	}
	if t <= kv[degree] {
		return degree
	}
	// First index in [degree+1, n+1] whose knot is greater than t.
	i := degree + 1 + sort.Search(n+1-degree, func(i int) bool {
		return kv[degree+1+i] > t
	})
	return i - 1
}

// Multiplicity returns how often t occurs in the knot vector, comparing with
// a tolerance relative to the domain.
func (kv KnotVector) Multiplicity(t float64) int {
	eps := kv.eps()
	m := 0
	for _, k := range kv {
		if math.Abs(k-t) <= eps {
			m++
		}
	}
	return m
}

func (kv KnotVector) eps() float64 {
	lo, hi := kv.Domain()
	return knotEpsilon * max(hi-lo, 1)
}

// snap returns the knot equal to t within tolerance, or t itself.
func (kv KnotVector) snap(t float64) float64 {
	eps := kv.eps()
	for _, k := range kv {
		if math.Abs(k-t) <= eps {
			return k
		}
	}
	return t
}

// Greville returns the Greville abscissae of a curve of the given degree:
// the averages of degree consecutive interior knots. Plotting the scalar
// coefficients of a B-spline function over these abscissae gives its control
// polygon, and for a Bézier segment over [0, 1] they are i/degree.
func (kv KnotVector) Greville(degree int) []float64 {
	n := len(kv) - degree - 1
	out := make([]float64, n)
	if degree == 0 {
		for i := range out {
			out[i] = 0.5 * (kv[i] + kv[i+1])
		}
		return out
	}
	for i := range out {
		var sum float64
		for _, k := range kv[i+1 : i+degree+1] {
			sum += k
		}
		out[i] = sum / float64(degree)
	}
	return out
}

// Validate checks that the knot vector fits a curve of the given order with
// count control points, that it is non-decreasing, and that it is clamped:
// its first and last order knots are equal.
func (kv KnotVector) Validate(order, count int) error {
	if order < 1 {
		return fmt.Errorf("order %d is less than 1", order)
	}
	if count < order {
		return fmt.Errorf("%d control points are too few for order %d", count, order)
	}
	if len(kv) != count+order {
		return fmt.Errorf("got %d knots, need %d", len(kv), count+order)
	}
	for i := 1; i < len(kv); i++ {
		if !(kv[i] >= kv[i-1]) {
			return fmt.Errorf("knot %d (%g) is less than knot %d (%g)", i, kv[i], i-1, kv[i-1])
		}
	}
	lo, hi := kv.Domain()
	if !(hi > lo) || math.IsInf(hi-lo, 0) {
		return fmt.Errorf("empty or infinite domain [%g, %g]", lo, hi)
	}
	for i := 1; i < order; i++ {
		if kv[i] != lo || kv[len(kv)-1-i] != hi {
			return fmt.Errorf("knot vector is not clamped")
		}
	}
	return nil
}

// interior returns the distinct knots strictly inside the domain.
func (kv KnotVector) interior() []float64 {
	lo, hi := kv.Domain()
	var out []float64
	for _, k := range kv {
		if k > lo && k < hi && (len(out) == 0 || k != out[len(out)-1]) {
			out = append(out, k)
		}
	}
	return out
}

// BezierKnots returns the clamped knot vector of a Bézier segment of the
// given order over [0, 1].
func BezierKnots(order int) KnotVector {
	kv := make(KnotVector, 2*order)
	for i := order; i < len(kv); i++ {
		kv[i] = 1
	}
	return kv
}
