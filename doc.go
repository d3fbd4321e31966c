// Package nurbs intersects rays with NURBS surfaces and with planar Bézier
// and B-spline curves. It is meant to be used by ray tracers and other
// solid-modeling code that needs the exact points where a line meets a
// curved face.
//
// # Surfaces
//
// A [Surface] is a tensor product NURBS surface, possibly rational, stored as
// a control [Net] of homogeneous points. [IntersectRay] finds where a [Ray3]
// meets a surface and returns the hits sorted by distance, with their
// positions and normals.
//
// Underneath, [Intersect] represents the ray as the intersection of two
// planes. Projecting the surface with [Surface.Project] turns each control
// point into its pair of signed distances to these planes, so that the
// hits become the zeros of a surface in the plane, a [ProjectedSurface].
// These zeros are isolated by Bézier clipping: [ClipInterval] bounds the
// part of a patch's parameter range that can contain a zero, and patches are
// alternately clipped in u and v until they are smaller than the requested
// parametric tolerance. Patches on which clipping stalls are split. The
// [Refiner] that cuts patches apart is pluggable; the default [KnotRefiner]
// uses knot insertion.
//
// # Curves
//
// For 2D problems, such as intersecting a ray with the profile of an
// extrusion, [FindRoots] finds the crossings of a [BezierCurve] with a
// [Ray2] by recursive subdivision. A curve's control polygon bounds the
// number of crossings (the variation diminishing property), and a piece that
// the ray crosses once and whose control polygon is flat enough is
// intersected through its chord. [Spline.FindRoots] does the same for
// B-spline curves by way of their Bézier pieces. [Subdivide] and [Flatten]
// split curves into flat pieces without reference to a ray.
//
// # Tolerances, options and logging
//
// Distances are compared using a [Tolerance]; [DefaultTolerance] suits
// models measured in millimeters. The behavior of the surface intersector can
// be tuned with [Option] values such as [WithMaxIterations]. Nothing is
// logged until [SetLogger] installs a logger.
//
// # Literature
//
//   - The NURBS Book by Les Piegl and Wayne Tiller
//   - [Ray Tracing Trimmed Rational Surface Patches] by Nishita, Sederberg and Kakimoto
//   - [Bézier clipping] by Sederberg and Nishita
//   - [Inverse bilinear interpolation] by Inigo Quilez
//
// [Ray Tracing Trimmed Rational Surface Patches]: https://dl.acm.org/doi/10.1145/97880.97918
// [Bézier clipping]: https://doi.org/10.1016/0010-4485(90)90039-F
// [Inverse bilinear interpolation]: https://iquilezles.org/articles/ibilinear/
package nurbs
