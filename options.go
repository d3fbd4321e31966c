package nurbs

const (
	// DefaultClipBias widens every clipped interval by this fraction of the
	// unit interval, toward its ends: [lo, hi] becomes
	// [lo·(1−bias), hi·(1−bias)+bias]. Changing it changes how quickly
	// patches converge and how robustly roots near patch edges are kept.
	DefaultClipBias = 0.01

	// DefaultSplitThreshold is the clipped fraction of a patch above which
	// clipping is considered to have stalled and the patch is split
	// instead.
	DefaultSplitThreshold = 0.8

	// DefaultMaxIterations bounds the total number of clipping iterations
	// of one call to [Intersect].
	DefaultMaxIterations = 100_000

	// DefaultMaxPatches bounds the number of patches waiting in the
	// worklist of one call to [Intersect].
	DefaultMaxPatches = 1 << 16
)

// Option configures a call to [Intersect] or [IntersectRay].
//
// Example:
//
//	hits, err := nurbs.Intersect(srf, p1, p2, 1e-6,
//	    nurbs.WithTolerance(nurbs.NewTolerance(1e-4, 1e-6)),
//	    nurbs.WithMaxIterations(5000))
type Option func(*options)

type options struct {
	tol            Tolerance
	refiner        Refiner
	maxIterations  int
	maxPatches     int
	clipBias       float64
	splitThreshold float64
}

func defaultOptions() options {
	return options{
		tol:            DefaultTolerance,
		refiner:        KnotRefiner{},
		maxIterations:  DefaultMaxIterations,
		maxPatches:     DefaultMaxPatches,
		clipBias:       DefaultClipBias,
		splitThreshold: DefaultSplitThreshold,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTolerance sets the tolerance [IntersectRay] uses for its bounding box
// test and for intersecting flat patches.
func WithTolerance(tol Tolerance) Option {
	return func(o *options) {
		o.tol = tol
	}
}

// WithRefiner replaces the knot-insertion based [KnotRefiner] used to split
// patches and to extract clipped regions. A nil refiner keeps the default.
func WithRefiner(r Refiner) Option {
	return func(o *options) {
		if r != nil {
			o.refiner = r
		}
	}
}

// WithMaxIterations bounds the total number of clipping iterations. When the
// bound is reached, [Intersect] fails with [ErrIterationLimit]. Values ≤ 0
// keep the default.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithMaxPatches bounds the number of patches waiting to be processed. When
// the bound is reached, [Intersect] fails with [ErrPatchBudget]. Values ≤ 0
// keep the default.
func WithMaxPatches(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPatches = n
		}
	}
}

// WithClipBias overrides [DefaultClipBias]. The value is clamped to [0, 0.5].
func WithClipBias(bias float64) Option {
	return func(o *options) {
		o.clipBias = min(max(bias, 0), 0.5)
	}
}

// WithSplitThreshold overrides [DefaultSplitThreshold]. Values outside
// (0, 1] keep the default.
func WithSplitThreshold(f float64) Option {
	return func(o *options) {
		if f > 0 && f <= 1 {
			o.splitThreshold = f
		}
	}
}
