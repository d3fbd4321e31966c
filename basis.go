package nurbs

// basisFuncs computes the degree+1 non-vanishing B-spline basis functions at
// t, N[span-degree..span], writing them to dst[:degree+1].
//
// This is algorithm A2.2 from The NURBS Book.
func basisFuncs(dst []float64, span int, t float64, degree int, kv KnotVector) []float64 {
	var left, right [MaxOrder]float64
	dst = dst[:degree+1]
	dst[0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = t - kv[span+1-j]
		right[j] = kv[span+j] - t
		var saved float64
		for r := range j {
			tmp := dst[r] / (right[r+1] + left[j-r])
			dst[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		dst[j] = saved
	}
	return dst
}

// basisDerivs computes the first derivatives of the degree+1 non-vanishing
// basis functions at t, using
//
//	N'ᵢ,ₚ = p/(uᵢ₊ₚ − uᵢ)·Nᵢ,ₚ₋₁ − p/(uᵢ₊ₚ₊₁ − uᵢ₊₁)·Nᵢ₊₁,ₚ₋₁
func basisDerivs(dst []float64, span int, t float64, degree int, kv KnotVector) []float64 {
	dst = dst[:degree+1]
	if degree == 0 {
		dst[0] = 0
		return dst
	}
	var buf [MaxOrder]float64
	// lower[k] is N[span-degree+1+k] of degree-1.
	lower := basisFuncs(buf[:], span, t, degree-1, kv)
	p := float64(degree)
	for a := range dst {
		i := span - degree + a
		var d float64
		if a > 0 {
			if den := kv[i+degree] - kv[i]; den != 0 {
				d += p * lower[a-1] / den
			}
		}
		if a < degree {
			if den := kv[i+degree+1] - kv[i+1]; den != 0 {
				d -= p * lower[a] / den
			}
		}
		dst[a] = d
	}
	return dst
}
