// Package topology derives the weft/warp structure of a Knit Graph from its
// contour rows. The stages run in this order and mutate the graph in place:
//
//  1. SeedLeafConnections: first-to-first and last-to-last leaf weft edges.
//  2. PropagateWeftEdges: nearest-neighbour weft edges between adjacent rows,
//     walking outward from a start row in a first and a second pass.
//  3. SeedWarpEdges: structural end nodes and their seeding warp edges.
//  4. AssignSegments: weft chains between end nodes become numbered segments.
//  5. ConnectSegmentNodes: segment members are chained with tagged weft edges.
//
// Every stage is deterministic: the same graph and options always give the
// same edges and segment ids. Soft anomalies (weft edges that cannot be
// segmented) are reported in SegmentReport and logged through klog; hard
// precondition failures are returned as sentinel errors wrapped with the
// failing stage's name.
package topology
