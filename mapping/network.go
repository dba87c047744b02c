// SPDX-License-Identifier: MIT
//
// File: network.go
// Role: mapping network construction and per-segment node lookup.

package mapping

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/knitnet/core"
)

// Build derives the mapping network of a segmented Knit Graph: a new graph
// holding only the end nodes, one segment edge per distinct segment id of
// the weft edges (parallel segments stay parallel), and the warp edges whose
// endpoints are both end nodes. The Knit Graph is not modified.
//
// Errors: ErrNoSegments.
// Complexity: O(V + E log E).
func Build(g *core.Graph) (*core.Graph, error) {
	segs := segmentIDs(g)
	if len(segs) == 0 {
		return nil, fmt.Errorf("Build: %w", ErrNoSegments)
	}

	mg := g.Filter(
		func(n core.Node) bool { return n.End },
		func(e core.Edge) bool { return e.Role == core.RoleWarp },
	)
	for _, seg := range segs {
		if err := mg.AddSegmentEdge(seg.Start, seg.End, seg); err != nil {
			return nil, fmt.Errorf("Build: segment %s: %w", seg, err)
		}
	}

	return mg, nil
}

// segmentIDs returns the distinct segment ids carried by weft edges, sorted.
func segmentIDs(g *core.Graph) []core.SegmentID {
	var segs []core.SegmentID
	for _, e := range g.WeftEdges() {
		if e.Segment != nil {
			segs = append(segs, *e.Segment)
		}
	}
	slices.SortFunc(segs, core.SegmentID.Compare)

	return slices.Compact(segs)
}

// SegmentNodes pairs a segment id with the interior nodes carrying it.
type SegmentNodes struct {
	Segment core.SegmentID
	Nodes   []core.Node
}

// NodesBySegment lists, for every segment of the Knit Graph in id order,
// the nodes tagged with it in (row, num) order. Single-edge segments have
// no interior nodes and appear with an empty list.
func NodesBySegment(g *core.Graph) []SegmentNodes {
	segs := segmentIDs(g)
	out := make([]SegmentNodes, len(segs))
	for i, seg := range segs {
		out[i] = SegmentNodes{Segment: seg, Nodes: g.NodesOnSegment(seg)}
	}

	return out
}
