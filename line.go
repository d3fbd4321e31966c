package nurbs

import "math"

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) IsInf() bool {
	return l.P0.IsInf() || l.P1.IsInf()
}

func (l Line) IsNaN() bool {
	return l.P0.IsNaN() || l.P1.IsNaN()
}

// SegmentHit classifies the result of [IntersectLineSegment].
type SegmentHit int

const (
	// NoHit means the infinite line misses the segment, or runs parallel to
	// it.
	NoHit SegmentHit = iota
	// HitStart means the line passes within tolerance of the segment's
	// start point.
	HitStart
	// HitEnd means the line passes within tolerance of the segment's end
	// point.
	HitEnd
	// HitInterior means the line crosses the segment strictly between its
	// end points.
	HitInterior
)

func (k SegmentHit) String() string {
	switch k {
	case NoHit:
		return "NoHit"
	case HitStart:
		return "HitStart"
	case HitEnd:
		return "HitEnd"
	case HitInterior:
		return "HitInterior"
	default:
		return "SegmentHit(?)"
	}
}

// IntersectLineSegment intersects the infinite line through start with
// direction dir with the segment seg. Segments with non-finite end points
// are never hit.
//
// The second return value is the parametric position of the hit along the
// segment: 0 for [HitStart], 1 for [HitEnd], and a value in (0, 1) for
// [HitInterior]. End points within tol.Dist of the line are reported as hits
// on that end point, with the start point taking precedence.
func IntersectLineSegment(start Point, dir Vec2, seg Line, tol Tolerance) (SegmentHit, float64) {
	dlen := dir.Hypot()
	if dlen == 0 || seg.IsInf() || seg.IsNaN() {
		return NoHit, 0
	}
	unit := dir.Mul(1 / dlen)

	// Perpendicular distances of the end points from the line.
	d0 := unit.Cross(seg.P0.Sub(start))
	d1 := unit.Cross(seg.P1.Sub(start))
	if math.Abs(d0) <= tol.Dist {
		return HitStart, 0
	}
	if math.Abs(d1) <= tol.Dist {
		return HitEnd, 1
	}
	if (d0 < 0) == (d1 < 0) {
		// Both end points on the same side, which includes the parallel
		// case.
		return NoHit, 0
	}

	c := seg.P1.Sub(seg.P0)
	if clen := seg.Length(); clen == 0 || math.Abs(unit.Cross(c))/clen <= tol.Perp {
		return NoHit, 0
	}
	t := d0 / (d0 - d1)
	switch {
	case t <= 0:
		return HitStart, 0
	case t >= 1:
		return HitEnd, 1
	default:
		return HitInterior, t
	}
}
