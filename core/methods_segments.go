// SPDX-License-Identifier: MIT
//
// File: methods_segments.go
// Role: Segment-edge lookups keyed by the end node a segment starts or ends at.

package core

import (
	"fmt"
	"slices"
)

// SegmentsByStart returns the ids of segment edges whose Start is id,
// sorted ascending. Unknown nodes yield ErrUnknownNode.
func (g *Graph) SegmentsByStart(id NodeID) ([]SegmentID, error) {
	return g.segmentsAt("SegmentsByStart", id, func(s SegmentID) bool { return s.Start == id })
}

// SegmentsByEnd returns the ids of segment edges whose End is id, sorted ascending.
func (g *Graph) SegmentsByEnd(id NodeID) ([]SegmentID, error) {
	return g.segmentsAt("SegmentsByEnd", id, func(s SegmentID) bool { return s.End == id })
}

func (g *Graph) segmentsAt(method string, id NodeID, match func(SegmentID) bool) ([]SegmentID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	adj, ok := g.adjacency[id]
	if !ok {
		return nil, fmt.Errorf("%s(%d): %w", method, id, ErrUnknownNode)
	}
	var out []SegmentID
	for k := range adj {
		e := g.edges[k]
		if e.Role != RoleSegment || e.Segment == nil || !match(*e.Segment) {
			continue
		}
		out = append(out, *e.Segment)
	}
	slices.SortFunc(out, SegmentID.Compare)

	return out, nil
}

// HasSegment reports whether a segment edge with id seg is stored.
func (g *Graph) HasSegment(seg SegmentID) bool {
	return g.HasEdge(SegmentKey(seg))
}
