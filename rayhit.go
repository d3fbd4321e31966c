package nurbs

import (
	"cmp"
	"math"
	"slices"

	"github.com/ungerik/go3d/float64/vec3"
)

// RayHit is a point where a ray meets a surface.
type RayHit struct {
	UVHit
	// Point is the surface evaluated at the hit's parameters.
	Point vec3.T
	// Normal is the unit surface normal at Point, or zero at singular
	// points.
	Normal vec3.T
	// Dist is the signed Euclidean distance from the ray's origin to the
	// projection of Point onto the ray. Hits behind the origin have
	// negative distances.
	Dist float64
}

// IntersectRay returns the points where the line of ray meets s, sorted by
// their distance along the ray. Hits whose parameters are within uvTol of an
// earlier hit in both u and v are merged.
//
// Bilinear patches with coplanar, non-rational control points are
// intersected in closed form. Other surfaces are handed to [Intersect] with
// the two planes returned by [Ray3.Planes].
func IntersectRay(s *Surface, ray Ray3, uvTol float64, opts ...Option) ([]RayHit, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	p1, p2, err := ray.Planes()
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	if !rayMeetsBox(ray, s, o.tol) {
		return nil, nil
	}

	var uv []UVHit
	if h, ok := planarHit(s, ray, uvTol, o.tol); ok {
		uv = h
	} else {
		uv, err = Intersect(s, p1, p2, uvTol, opts...)
		if err != nil {
			return nil, err
		}
	}

	uv = DedupHits(uv, uvTol)
	l := ray.Dir.Length()
	hits := make([]RayHit, 0, len(uv))
	for _, h := range uv {
		pt, su, sv := s.Derivatives(h.U, h.V)
		n := vec3.Cross(&su, &sv)
		if nl := n.Length(); nl > 0 {
			n = n.Scaled(1 / nl)
		}
		hits = append(hits, RayHit{
			UVHit:  h,
			Point:  pt,
			Normal: n,
			Dist:   ray.Param(pt) * l,
		})
	}
	slices.SortStableFunc(hits, func(a, b RayHit) int {
		return cmp.Compare(a.Dist, b.Dist)
	})
	return hits, nil
}

// DedupHits drops every hit that lies within uvTol of an earlier one in
// both parameters. The order of the remaining hits is kept.
func DedupHits(hits []UVHit, uvTol float64) []UVHit {
	out := make([]UVHit, 0, len(hits))
outer:
	for _, h := range hits {
		for _, o := range out {
			if math.Abs(h.U-o.U) <= uvTol && math.Abs(h.V-o.V) <= uvTol {
				continue outer
			}
		}
		out = append(out, h)
	}
	return out
}

// rayMeetsBox reports whether the line of ray passes through the bounding
// box of the surface's control points, inflated by tol.Dist.
func rayMeetsBox(ray Ray3, s *Surface, tol Tolerance) bool {
	lo, hi := s.Bounds()
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for k := range 3 {
		a, b := lo[k]-tol.Dist, hi[k]+tol.Dist
		o, d := ray.Origin[k], ray.Dir[k]
		if d == 0 {
			if o < a || o > b {
				return false
			}
			continue
		}
		t0, t1 := (a-o)/d, (b-o)/d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = max(tmin, t0)
		tmax = min(tmax, t1)
		if tmin > tmax {
			return false
		}
	}
	return true
}

// planarHit intersects the ray with a flat bilinear patch. ok is false if
// the surface is not such a patch.
func planarHit(s *Surface, ray Ray3, uvTol float64, tol Tolerance) (hits []UVHit, ok bool) {
	if s.Rational || s.Order != [2]int{2, 2} || s.Size != [2]int{2, 2} {
		return nil, false
	}
	a := s.At(0, 0).Dehomogenized()
	b := s.At(1, 0).Dehomogenized()
	c := s.At(1, 1).Dehomogenized()
	d := s.At(0, 1).Dehomogenized()

	e := vec3.Sub(&b, &a)
	f := vec3.Sub(&d, &a)
	n := vec3.Cross(&e, &f)
	if n.Length() <= tol.Dist*tol.Dist {
		// Adjacent edges are parallel; use the diagonals.
		d1 := vec3.Sub(&c, &a)
		d2 := vec3.Sub(&d, &b)
		n = vec3.Cross(&d1, &d2)
	}
	nl := n.Length()
	if nl == 0 {
		return nil, false
	}
	n = n.Scaled(1 / nl)
	ca := vec3.Sub(&c, &a)
	if math.Abs(vec3.Dot(&n, &ca)) > tol.Dist {
		return nil, false
	}

	denom := vec3.Dot(&n, &ray.Dir)
	if math.Abs(denom) <= tol.Perp*ray.Dir.Length() {
		// Parallel to the plane. Grazing hits are not reported.
		return nil, true
	}
	oa := vec3.Sub(&a, &ray.Origin)
	x := ray.At(vec3.Dot(&n, &oa) / denom)

	// Work in the coordinate plane the patch is least foreshortened in.
	i, j := 1, 2
	switch ax, ay, az := math.Abs(n[0]), math.Abs(n[1]), math.Abs(n[2]); {
	case ay >= ax && ay >= az:
		i, j = 2, 0
	case az >= ax && az >= ay:
		i, j = 0, 1
	}
	flat := func(p vec3.T) Vec2 { return Vec2{p[i], p[j]} }
	e2 := flat(e)
	f2 := flat(f)
	g2 := flat(vec3.T{a[0] - b[0] + c[0] - d[0], a[1] - b[1] + c[1] - d[1], a[2] - b[2] + c[2] - d[2]})
	xa := vec3.Sub(&x, &a)
	h2 := flat(xa)

	// h = e·u + f·v + g·uv, solved for v first.
	k2 := g2.Cross(f2)
	k1 := e2.Cross(f2) + h2.Cross(g2)
	k0 := h2.Cross(e2)
	roots, nroots := SolveQuadratic(k0, k1, k2)

	u0, u1 := s.Domain(DirU)
	v0, v1 := s.Domain(DirV)
	for _, v := range roots[:nroots] {
		den := e2.Add(g2.Mul(v))
		num := h2.Sub(f2.Mul(v))
		var u float64
		if math.Abs(den.X) >= math.Abs(den.Y) {
			u = num.X / den.X
		} else {
			u = num.Y / den.Y
		}
		if math.IsNaN(u) || math.IsInf(u, 0) {
			continue
		}
		if u < -uvTol || u > 1+uvTol || v < -uvTol || v > 1+uvTol {
			continue
		}
		u = min(max(u, 0), 1)
		v = min(max(v, 0), 1)
		hits = append(hits, UVHit{U: u0 + u*(u1-u0), V: v0 + v*(v1-v0)})
	}
	return hits, true
}
