// Package geometry is the narrow geometric boundary consumed by the knit
// topology builders.
//
// The topology and mapping algorithms never inspect curves or meshes; they
// only need three answers from the outside world:
//
//	Distance(a, b)        exact Euclidean distance between two stitch points
//	DistanceSquared(a, b) the cheaper squared variant, same ordering
//	RowTotalLength(row)   total polyline length of one course
//
// Adapter captures exactly that contract. Euclidean is the default
// implementation, backed by sdfx vector math over the sampled course points
// that also populate the knit graph.
//
// Courses is the initialisation input: an ordered list of rows, each row an
// ordered sequence of 3D points, plus the course height used when the rows
// were sampled.
package geometry
