package nurbs

// Tolerance bundles the distance tolerances used by the intersection
// routines. Every layer, from the 2D segment test to the surface clipper,
// receives the same value.
type Tolerance struct {
	// Dist is the distance below which two points are considered
	// coincident.
	Dist float64
	// DistSq is Dist².
	DistSq float64
	// Perp is the value of |sin θ| below which two directions are
	// considered parallel.
	Perp float64
	// PerpSq is Perp².
	PerpSq float64
}

// DefaultTolerance matches the defaults of solid-modeling ray tracers that
// work in millimeters.
var DefaultTolerance = NewTolerance(0.0005, 1e-6)

// NewTolerance returns a tolerance with the squared variants filled in.
// Negative values are treated as zero.
func NewTolerance(dist, perp float64) Tolerance {
	dist = max(dist, 0)
	perp = max(perp, 0)
	return Tolerance{
		Dist:   dist,
		DistSq: dist * dist,
		Perp:   perp,
		PerpSq: perp * perp,
	}
}
