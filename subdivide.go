package nurbs

import (
	"iter"
	"math"
)

// Subdivide splits the curve into pieces whose control polygons lie within
// epsilon of their chords. The pieces cover the curve from start to end, in
// order. No piece is split more than maxDepth times, and maxDepth is capped
// at [MaxDepth].
func Subdivide(c BezierCurve, epsilon float64, maxDepth int) iter.Seq[BezierCurve] {
	maxDepth = min(max(maxDepth, 0), MaxDepth)
	return func(yield func(BezierCurve) bool) {
		if len(c) == 0 {
			return
		}
		subdivide(c, epsilon, maxDepth, 0, yield)
	}
}

func subdivide(c BezierCurve, epsilon float64, maxDepth, depth int, yield func(BezierCurve) bool) bool {
	if depth >= maxDepth || chordFlat(c, epsilon) {
		return yield(c)
	}
	left, right := c.Subdivide(0.5)
	return subdivide(left, epsilon, maxDepth, depth+1, yield) &&
		subdivide(right, epsilon, maxDepth, depth+1, yield)
}

// chordFlat reports whether every control point lies within epsilon of the
// chord. A closed control polygon is only flat if it has collapsed to a
// point.
func chordFlat(c BezierCurve, epsilon float64) bool {
	if len(c) <= 2 {
		return true
	}
	_, _, _, above, below, ok := chordBand(c)
	if !ok {
		bbox := c.BoundingBox()
		return math.Max(bbox.Width(), bbox.Height()) < epsilon
	}
	return max(above, -below) < epsilon
}

// Flatten approximates the curve by a polyline whose vertices lie on the
// curve and whose segments are within epsilon of it.
func Flatten(c BezierCurve, epsilon float64) []Point {
	if len(c) == 0 {
		return nil
	}
	out := []Point{c.Start()}
	for piece := range Subdivide(c, epsilon, MaxDepth) {
		out = append(out, piece.End())
	}
	return out
}
