// Package pipeline runs the knitting topology stages in order and gathers
// their results:
//
//	build → seed_leaves → propagate_weft → seed_warp → assign_segments
//	      → [final_weft] → mapping_network → build_chains
//
// Each stage is synchronous; the context is checked between stages. A hard
// failure stops the run with a *StageError naming the stage. Soft anomalies
// (unsegmented weft edges, dangling chains, nodes without weft edges, closed
// weft loops without an end node) never stop a run; they are collected in
// Result.Diagnostics, logged as warnings and counted in metrics.
package pipeline
