// Package dfs implements depth-first search traversal, connected components
// and cycle detection on a core.Graph, with every walk optionally restricted
// to edges of given roles.
//
// What:
//
//   - DFS: explores as far as possible along each branch before
//     backtracking. Supports:
//   - Pre-order hook
//   - Cancellation via context.Context
//   - Edge-role filtering
//   - Forest traversal (WithFullTraversal)
//   - Components: groups nodes linked by edges of one role, for instance
//     the weft runs of a knit graph or the warp columns of a mapping network.
//     It accepts the DFS options, so a caller's context bounds the walk.
//   - DetectCycles: records back-edge cycles among edges of one role using
//     vertex colouring (White, Gray, Black) and canonical rotation.
//
// Determinism:
//
//	Roots are taken in (row, num) order and neighbours in ascending id
//	order, so Order, Parent and cycle lists are stable across runs.
//
// Key Types & Constants:
//
//   - White, Gray, Black: visitation markers
//   - Option: functional options for DFS behavior
//   - DFSOptions: holds Context, OnVisit, Roles, FullTraversal
//   - DFSResult: collects post-order, Depth, Parent, Visited maps
//
// Complexity:
//
//   - DFS:            Time O(V + E log Δ), Memory O(V)
//   - Components:     Time O(V + E log Δ), Memory O(V)
//   - DetectCycles:   Time O(V + E + C·L), Memory O(V + L_max)
//
// Errors:
//
//   - ErrGraphNil             graph pointer is nil
//   - ErrStartNodeNotFound    start node not in graph
//   - context.Canceled        DFS canceled via context
//   - hook errors             propagated from OnVisit
package dfs
