package nurbs

// Refiner cuts projected patches apart. [Intersect] uses it to split patches
// whose clipping stalled and to extract the clipped part of a patch. Both
// operations must keep the parameter values of the input, so that a
// sub-patch's domain locates it on the original surface.
type Refiner interface {
	// Split cuts s at parameter t in direction dir.
	Split(s *ProjectedSurface, dir Direction, t float64) (lo, hi *ProjectedSurface, err error)
	// Region returns the part of s between t0 and t1 in direction dir.
	Region(s *ProjectedSurface, dir Direction, t0, t1 float64) (*ProjectedSurface, error)
}

// KnotRefiner is the default [Refiner]. It cuts patches by knot insertion.
type KnotRefiner struct{}

func (KnotRefiner) Split(s *ProjectedSurface, dir Direction, t float64) (*ProjectedSurface, *ProjectedSurface, error) {
	return s.Split(dir, t)
}

func (KnotRefiner) Region(s *ProjectedSurface, dir Direction, t0, t1 float64) (*ProjectedSurface, error) {
	return s.Region(dir, t0, t1)
}
