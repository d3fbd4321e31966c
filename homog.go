package nurbs

import "github.com/ungerik/go3d/float64/vec3"

// HomPoint is a control point of a rational surface in homogeneous
// coordinates. Vec holds the Cartesian position premultiplied by the weight.
type HomPoint struct {
	Vec vec3.T
	W   float64
}

// Weighted returns the homogeneous point for pt with weight w.
func Weighted(pt vec3.T, w float64) HomPoint {
	return HomPoint{pt.Scaled(w), w}
}

// Lerp interpolates all four homogeneous coordinates.
func (p HomPoint) Lerp(o HomPoint, t float64) HomPoint {
	return HomPoint{
		Vec: vec3.Interpolate(&p.Vec, &o.Vec, t),
		W:   p.W + (o.W-p.W)*t,
	}
}

// Dehomogenized returns the Cartesian point. A zero weight yields
// non-finite coordinates.
func (p HomPoint) Dehomogenized() vec3.T {
	return p.Vec.Scaled(1 / p.W)
}
