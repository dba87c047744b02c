// Package builder initialises Knit Graphs from sampled rows ("courses") and
// provides deterministic synthetic fixtures for tests, examples and the CLI.
//
// The package offers:
//
//   - Orchestration:
//     – BuildGraph(gopts, bopts, cons...): one graph, options resolved once,
//     constructors applied in order.
//     – FromCourses: graph plus a geometry.Euclidean adapter over the same rows.
//   - Constructors:
//     – Courses(c):         one node per point, row-major ids, contour edges.
//     – Lattice(rows,cols): flat swatch.
//     – Tube(rows,perRow):  open rings stacked along Z.
//     – Taper(counts...):   rows of varying stitch count over a common width.
//   - Options:
//     – WithStartRows, WithSpacing, WithCourseHeight, WithRadius,
//     WithSeed + WithJitter for reproducible irregular input.
//
// Guarantees:
//
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Constructors return sentinel errors wrapped with the method name
//     (ErrTooFewRows, ErrTooFewStitches, ErrConstructFailed), and pass geometry
//     and core sentinels through unchanged.
//   - Same inputs, options and seed yield identical graphs.
package builder
