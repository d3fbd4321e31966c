package nurbs

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// Plane is the set of points p with Normal·p = D. Normal does not need to be
// a unit vector, but distances are only Euclidean if it is.
type Plane struct {
	Normal vec3.T
	D      float64
}

// Distance returns the signed distance of p from the plane, in units of the
// normal's length.
func (pl Plane) Distance(p vec3.T) float64 {
	return vec3.Dot(&pl.Normal, &p) - pl.D
}

func (pl Plane) validate() error {
	n := pl.Normal
	if !(n.Length() > 0) || math.IsInf(n.Length(), 0) || math.IsNaN(pl.D) || math.IsInf(pl.D, 0) {
		return fmt.Errorf("nurbs: plane %v, %g: %w", pl.Normal, pl.D, ErrDegenerateGeometry)
	}
	return nil
}

// Ray3 is a ray in space. Parameters along the ray are in units of Dir.
type Ray3 struct {
	Origin vec3.T
	Dir    vec3.T
}

// At returns the point Origin + t·Dir.
func (r Ray3) At(t float64) vec3.T {
	d := r.Dir.Scaled(t)
	return vec3.Add(&r.Origin, &d)
}

// Param returns the parameter of the orthogonal projection of p onto the
// ray's line.
func (r Ray3) Param(p vec3.T) float64 {
	d := vec3.Sub(&p, &r.Origin)
	return vec3.Dot(&d, &r.Dir) / vec3.Dot(&r.Dir, &r.Dir)
}

// Planes returns two orthogonal planes with unit normals whose intersection
// is the line of the ray.
func (r Ray3) Planes() (Plane, Plane, error) {
	l := r.Dir.Length()
	if !(l > 0) || math.IsInf(l, 0) {
		return Plane{}, Plane{}, fmt.Errorf("nurbs: ray direction %v: %w", r.Dir, ErrDegenerateGeometry)
	}
	d := r.Dir.Scaled(1 / l)

	// Cross with the axis the direction is least aligned with.
	var axis vec3.T
	switch ax, ay, az := math.Abs(d[0]), math.Abs(d[1]), math.Abs(d[2]); {
	case ax <= ay && ax <= az:
		axis = vec3.T{1, 0, 0}
	case ay <= az:
		axis = vec3.T{0, 1, 0}
	default:
		axis = vec3.T{0, 0, 1}
	}
	n1 := vec3.Cross(&d, &axis)
	n1.Normalize()
	n2 := vec3.Cross(&d, &n1)

	p1 := Plane{Normal: n1, D: vec3.Dot(&n1, &r.Origin)}
	p2 := Plane{Normal: n2, D: vec3.Dot(&n2, &r.Origin)}
	return p1, p2, nil
}
