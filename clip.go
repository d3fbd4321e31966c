package nurbs

import "math"

// Interval is a closed parameter interval. An interval with Lo > Hi is
// empty.
type Interval struct {
	Lo, Hi float64
}

func (iv Interval) Empty() bool    { return iv.Lo > iv.Hi }
func (iv Interval) Width() float64 { return iv.Hi - iv.Lo }

// emptyInterval is returned when a patch provably has no root.
var emptyInterval = Interval{Lo: 1, Hi: 0}

// ClipInterval returns the part of the patch's parameter range in direction
// dir, normalized to [0, 1], that can contain a zero of the projected
// surface. Parameter values outside the interval are guaranteed to have no
// zero.
//
// The distances of the control points to a line through the origin, roughly
// parallel to the iso-lines of dir, form a scalar B-spline function whose
// zeros include those of the surface. Its control polygon over the Greville
// abscissae bounds it, and where the hull of that polygon crosses zero
// bounds the zeros. The result is widened by bias toward both ends:
// [lo, hi] becomes [lo·(1−bias), hi·(1−bias)+bias], clamped to [0, 1].
//
// If the reference line cannot be formed because the net's edges cancel
// out, the patch cannot be clipped: ClipInterval returns [0, 1] and false.
// An interval with Lo > Hi means the patch has no zero.
func ClipInterval(s *ProjectedSurface, dir Direction, bias float64) (Interval, bool) {
	nu, nv := s.Size[0]-1, s.Size[1]-1
	p00, p10, p01, p11 := s.At(0, 0), s.At(nu, 0), s.At(0, nv), s.At(nu, nv)

	// Average of the two boundary edges running in the other direction.
	var e Vec2
	if dir == DirU {
		e = p01.Sub(p00).Add(p11.Sub(p10))
	} else {
		e = p10.Sub(p00).Add(p11.Sub(p01))
	}
	scale := max(math.Abs(p00.X), math.Abs(p00.Y), math.Abs(p10.X), math.Abs(p10.Y),
		math.Abs(p01.X), math.Abs(p01.Y), math.Abs(p11.X), math.Abs(p11.Y))
	l := e.Hypot()
	if !(l > 1e-12*scale) {
		return Interval{0, 1}, false
	}
	nrm := e.Perp().Mul(1 / l)

	// Per index along dir, the range of distances over the other direction.
	count := s.Size[dir]
	dmin := make([]float64, count)
	dmax := make([]float64, count)
	for k := range count {
		dmin[k] = math.Inf(1)
		dmax[k] = math.Inf(-1)
	}
	for i := range s.Size[0] {
		for j := range s.Size[1] {
			k := i
			if dir == DirV {
				k = j
			}
			d := Vec2(s.At(i, j)).Dot(nrm)
			dmin[k] = min(dmin[k], d)
			dmax[k] = max(dmax[k], d)
		}
	}

	xs := s.Knots[dir].Greville(s.Order[dir] - 1)
	lo, hi := s.Domain(dir)
	for k := range xs {
		xs[k] = (xs[k] - lo) / (hi - lo)
	}

	samples := make([]Point, 0, 2*count)
	for k, x := range xs {
		samples = append(samples, Point{x, dmin[k]}, Point{x, dmax[k]})
	}

	iv, found := Interval{math.Inf(1), math.Inf(-1)}, false
	include := func(x float64) {
		iv.Lo = min(iv.Lo, x)
		iv.Hi = max(iv.Hi, x)
		found = true
	}
	for a, pa := range samples {
		if pa.Y == 0 {
			include(pa.X)
			continue
		}
		for _, pb := range samples[a+1:] {
			if (pa.Y < 0) == (pb.Y < 0) && pb.Y != 0 {
				continue
			}
			include(zeroCrossing(pa, pb))
		}
	}
	if !found {
		return emptyInterval, true
	}
	if dmin[0] <= 0 && dmax[0] >= 0 {
		iv.Lo = 0
	}
	if dmin[count-1] <= 0 && dmax[count-1] >= 0 {
		iv.Hi = 1
	}

	iv.Lo = min(max(iv.Lo*(1-bias), 0), 1)
	iv.Hi = min(max(iv.Hi*(1-bias)+bias, 0), 1)
	return iv, true
}

// zeroCrossing returns the x coordinate where the segment from a to b
// crosses the x axis. The segment must straddle it.
func zeroCrossing(a, b Point) float64 {
	if a.Y == b.Y {
		// Both on the axis.
		return a.X
	}
	return a.X - a.Y*(b.X-a.X)/(b.Y-a.Y)
}
