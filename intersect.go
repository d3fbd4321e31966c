package nurbs

import (
	"fmt"
	"log/slog"
)

// UVHit is a root of a projected surface, located in the parameter domain of
// the original surface.
type UVHit struct {
	U, V float64
	// Depth is the number of splits that produced the patch containing the
	// hit.
	Depth int
	// Sub is the number of clipping steps spent on that patch.
	Sub int
}

type workItem struct {
	srf   *ProjectedSurface
	dir   Direction
	depth int
}

// Intersect returns the parameters of the points where s meets the line of
// intersection of the planes p1 and p2.
//
// The surface is projected so that the line maps to the origin, and the
// projected patch is narrowed down by alternately clipping it in u and v
// ([ClipInterval]). Patches on which clipping stalls are split and both
// halves are processed separately. A hit is reported at the center of each
// patch that has become smaller than uvTol in both directions and whose
// control net still surrounds the origin.
//
// A root lying on the boundary between two patches may be reported once for
// each of them; see [DedupHits]. Tangential contacts may be missed or
// reported several times.
func Intersect(s *Surface, p1, p2 Plane, uvTol float64, opts ...Option) ([]UVHit, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := p1.validate(); err != nil {
		return nil, err
	}
	if err := p2.validate(); err != nil {
		return nil, err
	}
	if !(uvTol > 0) {
		return nil, fmt.Errorf("nurbs: uv tolerance %g is not positive: %w", uvTol, ErrParameterRange)
	}

	ps := s.Project(p1, p2)
	for k, p := range ps.Points {
		if !p.isFinite() {
			return nil, fmt.Errorf("nurbs: control point %d projects to %v: %w", k, p, ErrDegenerateGeometry)
		}
	}

	x := intersector{
		opts:  buildOptions(opts),
		uvTol: uvTol,
		log:   Logger(),
	}
	hits, err := x.run(ps)
	x.log.Debug("nurbs: intersect done",
		"hits", len(hits),
		"iterations", x.iterations,
		"splits", x.splits,
		"err", err)
	return hits, err
}

type intersector struct {
	opts  options
	uvTol float64
	log   *slog.Logger

	iterations int
	splits     int
}

func (x *intersector) converged(s *ProjectedSurface) bool {
	return s.Width(DirU) < x.uvTol && s.Width(DirV) < x.uvTol
}

// surrounds reports whether the box of the patch's control net contains the
// origin. There is no slack: a patch that merely comes close to the ray would
// otherwise be reported as a hit once it is small enough.
func (x *intersector) surrounds(s *ProjectedSurface) bool {
	return BoundingRect(s.Points).ContainsOrigin(0)
}

func (x *intersector) run(ps *ProjectedSurface) ([]UVHit, error) {
	var hits []UVHit
	stack := []workItem{{srf: ps, dir: DirU}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !x.surrounds(item.srf) {
			continue
		}

		for sub := 0; ; sub++ {
			if x.converged(item.srf) {
				u, v := item.srf.Mid()
				hits = append(hits, UVHit{U: u, V: v, Depth: item.depth, Sub: sub})
				break
			}
			if item.srf.Width(item.dir) < x.uvTol {
				item.dir = item.dir.Other()
			}

			x.iterations++
			if x.iterations > x.opts.maxIterations {
				x.log.Warn("nurbs: iteration limit reached",
					"limit", x.opts.maxIterations,
					"hits", len(hits))
				return nil, fmt.Errorf("nurbs: %d clipping iterations: %w", x.opts.maxIterations, ErrIterationLimit)
			}

			iv, ok := ClipInterval(item.srf, item.dir, x.opts.clipBias)
			if !ok {
				x.log.Warn("nurbs: degenerate clip line, splitting",
					"dir", item.dir,
					"depth", item.depth)
			}
			if iv.Empty() || iv.Lo > 1 || iv.Hi < 0 {
				break
			}

			if !ok || iv.Width() > x.opts.splitThreshold {
				lo, hi, err := x.split(item)
				if err != nil {
					return nil, err
				}
				if len(stack)+2 > x.opts.maxPatches {
					x.log.Warn("nurbs: patch budget exhausted",
						"limit", x.opts.maxPatches,
						"hits", len(hits))
					return nil, fmt.Errorf("nurbs: more than %d pending patches: %w", x.opts.maxPatches, ErrPatchBudget)
				}
				stack = append(stack, hi, lo)
				break
			}

			r, err := x.region(item, iv)
			if err != nil {
				return nil, err
			}
			item.srf = r
			if !x.surrounds(r) {
				break
			}
			item.dir = item.dir.Other()
		}
	}
	return hits, nil
}

// split halves the item's patch in its current direction. Both halves
// continue in the other direction.
func (x *intersector) split(item workItem) (lo, hi workItem, err error) {
	t := item.srf.SplitParam(item.dir)
	a, b, err := x.opts.refiner.Split(item.srf, item.dir, t)
	if err != nil {
		return workItem{}, workItem{}, fmt.Errorf("nurbs: splitting patch in %v at %g: %w", item.dir, t, err)
	}
	x.splits++
	x.log.Debug("nurbs: split patch",
		"dir", item.dir,
		"t", t,
		"depth", item.depth)
	next := item.dir.Other()
	return workItem{a, next, item.depth + 1}, workItem{b, next, item.depth + 1}, nil
}

// region maps the normalized interval iv to the item's parameter range and
// extracts that part of the patch.
func (x *intersector) region(item workItem, iv Interval) (*ProjectedSurface, error) {
	lo, hi := item.srf.Domain(item.dir)
	w := hi - lo
	t0, t1 := lo+iv.Lo*w, lo+iv.Hi*w
	// A zero clip bias can collapse the interval to a point; keep a sliver
	// around it so the knot vector stays valid.
	minWidth := max(x.uvTol*1e-3, 16*item.srf.Knots[item.dir].eps())
	if t1-t0 < minWidth {
		m := 0.5 * (t0 + t1)
		t0, t1 = m-0.5*minWidth, m+0.5*minWidth
	}
	r, err := x.opts.refiner.Region(item.srf, item.dir, t0, t1)
	if err != nil {
		return nil, fmt.Errorf("nurbs: clipping patch in %v to [%g, %g]: %w", item.dir, t0, t1, err)
	}
	return r, nil
}
