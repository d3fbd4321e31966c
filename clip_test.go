package nurbs

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ungerik/go3d/float64/vec3"
)

func projectedBilinear(t *testing.T, x, y float64) *ProjectedSurface {
	t.Helper()
	return bilinearPatch(t).Project(
		Plane{Normal: vec3.T{1, 0, 0}, D: x},
		Plane{Normal: vec3.T{0, 1, 0}, D: y},
	)
}

func TestClipIntervalBilinear(t *testing.T) {
	ps := projectedBilinear(t, 0.3, 0.7)

	iv, ok := ClipInterval(ps, DirU, DefaultClipBias)
	if !ok {
		t.Fatal("clipping in u failed")
	}
	diff(t, iv, Interval{0.297, 0.307}, cmpopts.EquateApprox(0, 1e-12))

	iv, ok = ClipInterval(ps, DirV, DefaultClipBias)
	if !ok {
		t.Fatal("clipping in v failed")
	}
	diff(t, iv, Interval{0.693, 0.703}, cmpopts.EquateApprox(0, 1e-12))

	// Without a bias, a linear patch is clipped to the root exactly.
	iv, _ = ClipInterval(ps, DirU, 0)
	diff(t, iv, Interval{0.3, 0.3}, cmpopts.EquateApprox(0, 1e-12))
}

func TestClipIntervalEdges(t *testing.T) {
	// Roots on the boundary of the patch.
	iv, _ := ClipInterval(projectedBilinear(t, 0, 0.5), DirU, DefaultClipBias)
	diff(t, iv, Interval{0, 0.01}, cmpopts.EquateApprox(0, 1e-12))
	iv, _ = ClipInterval(projectedBilinear(t, 1, 0.5), DirU, DefaultClipBias)
	diff(t, iv, Interval{0.99, 1}, cmpopts.EquateApprox(0, 1e-12))
}

func TestClipIntervalEmpty(t *testing.T) {
	iv, ok := ClipInterval(projectedBilinear(t, 2, 0.5), DirU, DefaultClipBias)
	if !ok {
		t.Fatal("clipping failed")
	}
	if !iv.Empty() {
		t.Errorf("got %v for a patch without roots, want an empty interval", iv)
	}
}

func TestClipIntervalDegenerate(t *testing.T) {
	ps := &ProjectedSurface{
		Order:  [2]int{2, 2},
		Knots:  [2]KnotVector{BezierKnots(2), BezierKnots(2)},
		Size:   [2]int{2, 2},
		Points: []Point{Pt(-1, 1), Pt(1, -1), Pt(1, -1), Pt(-1, 1)},
	}
	// The edges in v cancel out, so there is no line to clip against in
	// u.
	iv, ok := ClipInterval(ps, DirU, DefaultClipBias)
	if ok {
		t.Errorf("got %v, want clipping to fail", iv)
	}
	diff(t, iv, Interval{0, 1})
}

// TestClipIntervalConservative clips random patches towards a known root and
// checks that the root is never clipped away.
func TestClipIntervalConservative(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	for trial := range 100 {
		nu, nv := 2+rng.IntN(3), 2+rng.IntN(3)
		pts := make([][]vec3.T, nu)
		weights := make([][]float64, nu)
		for i := range pts {
			pts[i] = make([]vec3.T, nv)
			weights[i] = make([]float64, nv)
			for j := range pts[i] {
				pts[i][j] = vec3.T{
					float64(i)/float64(nu-1) + 0.1*rng.NormFloat64(),
					float64(j)/float64(nv-1) + 0.1*rng.NormFloat64(),
					rng.NormFloat64(),
				}
				weights[i][j] = 0.5 + rng.Float64()*1.5
			}
		}
		s, err := NewBezierSurface(pts, weights)
		if err != nil {
			t.Fatal(err)
		}
		root := [2]float64{0.05 + 0.9*rng.Float64(), 0.05 + 0.9*rng.Float64()}
		ray := Ray3{Origin: s.Eval(root[0], root[1]), Dir: vec3.T{0.1 * rng.NormFloat64(), 0.1 * rng.NormFloat64(), 1}}
		p1, p2, err := ray.Planes()
		if err != nil {
			t.Fatal(err)
		}

		ps := s.Project(p1, p2)
		dir := DirU
		for range 12 {
			lo, hi := ps.Domain(dir)
			iv, ok := ClipInterval(ps, dir, 0)
			t0, t1 := lo+iv.Lo*(hi-lo), lo+iv.Hi*(hi-lo)
			if ok && !(root[dir] >= t0-1e-9 && root[dir] <= t1+1e-9) {
				t.Fatalf("trial %d: root %v clipped away in %v by [%g, %g]", trial, root, dir, t0, t1)
			}
			if !ok || iv.Width() > DefaultSplitThreshold {
				// Keep the half that contains the root.
				mid := ps.SplitParam(dir)
				left, right, err := ps.Split(dir, mid)
				if err != nil {
					t.Fatal(err)
				}
				if root[dir] <= mid {
					ps = left
				} else {
					ps = right
				}
			} else {
				t0, t1 = min(t0, root[dir])-1e-9, max(t1, root[dir])+1e-9
				if ps, err = ps.Region(dir, t0, t1); err != nil {
					t.Fatal(err)
				}
			}
			if ps.Width(dir) < 1e-6 {
				break
			}
			dir = dir.Other()
		}
	}
}
