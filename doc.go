// Package knitnet derives machine-knittable stitch topology from sampled
// contour rows.
//
// A run turns ordered rows of points ("courses") into a Knit Graph whose
// nodes are stitches and whose edges are weft (same pass) and warp (row to
// row) connections, splits the weft network into segments between end
// nodes, and traces the source and target chains of the resulting Mapping
// Network.
//
// Packages:
//
//   - geometry: the distance and row-length contract, with a Euclidean adapter.
//   - core:     the Knit Graph with typed nodes and edges and ordered views.
//   - builder:  graph initialisation from courses, plus lattice, tube and taper fixtures.
//   - topology: leaf seeding, weft propagation, warp seeding and segmentation.
//   - mapping:  mapping network construction and chain tracing.
//   - dfs:      role-filtered traversal, weft components and cycle detection.
//   - pipeline: ordered stage execution with diagnostics, logging and metrics.
//   - config:   YAML and environment configuration, rows file loading.
//   - metrics:  Prometheus collectors on a private registry.
//   - snapshot: compact binary persistence of graphs.
//
// The knitnet command under cmd/knitnet wires all of them together.
//
// Quick start:
//
//	courses, _ := builder.LatticeCourses(3, 4)
//	res, err := pipeline.Run(ctx, courses, nil)
//	if err != nil {
//		// errors.As(err, &*pipeline.StageError) names the failing stage
//	}
//	fmt.Println(res.Graph, len(res.Chains.Source))
package knitnet
