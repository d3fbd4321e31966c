package nurbs

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestKnotSpan(t *testing.T) {
	// Degree 2 with interior knots 1 (double) and 3.
	kv := KnotVector{0, 0, 0, 1, 1, 3, 4, 4, 4}
	tests := []struct {
		t    float64
		want int
	}{
		{-1, 2},
		{0, 2},
		{0.5, 2},
		{1, 4},
		{2, 4},
		{3, 5},
		{3.5, 5},
		{4, 5},
		{10, 5},
	}
	for _, tt := range tests {
		if got := kv.Span(2, tt.t); got != tt.want {
			t.Errorf("Span(2, %g) = %d, want %d", tt.t, got, tt.want)
		}
	}
}

func TestKnotMultiplicity(t *testing.T) {
	kv := KnotVector{0, 0, 0, 1, 1, 3, 4, 4, 4}
	for k, want := range map[float64]int{0: 3, 1: 2, 1 + 1e-14: 2, 2: 0, 3: 1, 4: 3} {
		if got := kv.Multiplicity(k); got != want {
			t.Errorf("Multiplicity(%g) = %d, want %d", k, got, want)
		}
	}
}

func TestKnotGreville(t *testing.T) {
	diff(t, BezierKnots(4).Greville(3), []float64{0, 1.0 / 3, 2.0 / 3, 1}, cmpopts.EquateApprox(0, 1e-15))
	diff(t, KnotVector{0, 0, 0, 1, 2, 2, 2}.Greville(2), []float64{0, 0.5, 1.5, 2})
	diff(t, KnotVector{0, 1, 2}.Greville(0), []float64{0.5, 1.5})
}

func TestKnotValidate(t *testing.T) {
	tests := []struct {
		name  string
		kv    KnotVector
		order int
		count int
		ok    bool
	}{
		{"bezier", BezierKnots(3), 3, 3, true},
		{"interior", KnotVector{0, 0, 0.5, 1, 1}, 2, 3, true},
		{"order zero", KnotVector{0, 1}, 0, 2, false},
		{"too few points", KnotVector{0, 0, 0, 1, 1, 1}, 3, 2, false},
		{"wrong length", KnotVector{0, 0, 1, 1}, 2, 3, false},
		{"decreasing", KnotVector{0, 0, 0.7, 0.3, 1, 1}, 2, 4, false},
		{"empty domain", KnotVector{1, 1, 1, 1}, 2, 2, false},
		{"unclamped", KnotVector{0, 1, 2, 3}, 2, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.kv.Validate(tt.order, tt.count)
			if (err == nil) != tt.ok {
				t.Errorf("got error %v, want ok = %t", err, tt.ok)
			}
		})
	}
}

func TestKnotInterior(t *testing.T) {
	kv := KnotVector{0, 0, 0, 1, 1, 3, 4, 4, 4}
	diff(t, kv.interior(), []float64{1, 3})
	if in := BezierKnots(3).interior(); len(in) != 0 {
		t.Errorf("got interior knots %v for a Bézier knot vector", in)
	}
	diff(t, BezierKnots(2), KnotVector{0, 0, 1, 1})
}
