package nurbs

import "math"

// SolveQuadratic finds the real roots of c0 + c1·x + c2·x² = 0, in ascending
// order.
//
// A nearly linear equation is solved ignoring the quadratic term; its other
// root would be out of representable range. If all coefficients are zero, so
// that every x is a solution, a single 0 is returned.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) || math.IsNaN(sc0) || math.IsNaN(sc1) {
		// c2 is zero or tiny compared to the other coefficients.
		switch root := -c0 / c1; {
		case !math.IsInf(root, 0) && !math.IsNaN(root):
			return [2]float64{root}, 1
		case c0 == 0 && c1 == 0:
			return [2]float64{0}, 1
		default:
			return [2]float64{}, 0
		}
	}

	var root1 float64
	switch arg := sc1*sc1 - 4*sc0; {
	case math.IsInf(arg, 0):
		// sc1² overflowed. Take one root from sc1·x + x² = 0 and the other
		// from the product of the roots.
		root1 = -sc1
	case arg < 0:
		return [2]float64{}, 0
	case arg == 0:
		return [2]float64{-0.5 * sc1}, 1
	default:
		// Avoid cancellation between sc1 and the square root.
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if math.IsInf(root2, 0) || math.IsNaN(root2) {
		return [2]float64{root1}, 1
	}
	return [2]float64{min(root1, root2), max(root1, root2)}, 2
}
