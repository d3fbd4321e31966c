package nurbs

import "errors"

var (
	// ErrDegenerateGeometry is returned when an input makes a required
	// division meaningless: a plane or ray without a direction, or control
	// points that project to non-finite values.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrInvalidSurface is returned for surfaces whose knot vectors, orders
	// and control net sizes don't agree.
	ErrInvalidSurface = errors.New("invalid surface")

	// ErrUnsupportedOrder is returned for surfaces and curves with an order
	// below 2 or above [MaxOrder].
	ErrUnsupportedOrder = errors.New("unsupported surface order")

	// ErrParameterRange is returned when a split or region parameter lies
	// outside the domain of a knot vector.
	ErrParameterRange = errors.New("parameter out of range")

	// ErrIterationLimit is returned when an intersection does not finish
	// within the configured number of clipping iterations. This usually
	// means the UV tolerance is too tight for the surface's scale.
	ErrIterationLimit = errors.New("iteration limit exceeded")

	// ErrPatchBudget is returned when the worklist of pending patches grows
	// beyond the configured budget.
	ErrPatchBudget = errors.New("patch budget exhausted")
)
