// Package mapping builds the Mapping Network of a segmented Knit Graph and
// traces the source and target chains that final row generation consumes.
//
// The mapping network keeps only the end nodes of the Knit Graph. Each weft
// segment becomes one RoleSegment edge between its two end nodes, and the
// seeding warp edges between end nodes are carried over unchanged.
//
// Chain tracing is greedy: at a branch the lowest segment id wins and no
// alternative is explored. A walk that runs out of continuations is not an
// error; the chain is kept and flagged as dangling.
//
// Complexity:
//
//   - Build:                  O(V + E log E)
//   - TraceSegmentsUntilWarp: O(S · Δ)
//   - BuildChains:            O(W · S · Δ)
package mapping
