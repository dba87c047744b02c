// Package core defines the Knit Graph: typed stitch nodes connected by
// contour, weft, warp and segment edges, with the deterministic query views
// used by the topology and mapping builders.
//
// What:
//
//   - Node: one stitch position. Row (course index), Num (index within the
//     row), Leaf (first/last of row), End (segmentation boundary), Start
//     (on a designated starting row) and an optional SegmentID.
//   - Edge: an undirected connection with exactly one Role. Contour edges
//     link consecutive points of a row, weft edges run sideways across the
//     knitting direction, warp edges run row to row, segment edges stand for
//     a whole run of weft edges between two end nodes (mapping networks).
//   - SegmentID: (Start, End, Index) with Start < End; Index separates
//     parallel segments between the same two end nodes.
//
// Identity and ordering:
//
//   - Nodes are keyed by NodeID and by the unique (Row, Num) pair. Node views
//     are ordered by row, then num, through a red-black tree index.
//   - Edges are keyed by EdgeKey{U, V, Slot} with U <= V. Contour, weft and
//     warp edges share slot 0, so re-adding any of them between the same pair
//     overwrites the previous role (last write wins). Segment edges use slot
//     Index+1 and may run in parallel.
//   - Edge views are in first-insertion order; overwrites keep the original
//     position.
//
// Concurrency:
//
//	A single sync.RWMutex guards the catalogs. Readers may share a graph;
//	the builders mutate in place and are not meant to run concurrently on
//	one instance. Clone first to branch.
//
// Errors:
//
//	ErrDuplicateNode     node id or (row, num) already present
//	ErrUnknownNode       an endpoint or queried node is absent
//	ErrInvalidPosition   negative row or num
//	ErrLoopNotAllowed    both endpoints are the same node
//	ErrEdgeNotFound      no edge under the given key
//	ErrInvalidTraversal  traversal from a node that is not an endpoint
//	ErrSegmentMismatch   segment id does not match the edge endpoints
package core
