// SPDX-License-Identifier: MIT
//
// File: segments.go
// Role: segmentation of weft chains between end nodes, and the final weft
// chaining of segment members.
//
// Every interior node moves through UNVISITED → IN_SEGMENT → ASSIGNED and
// never back. Nodes of an abandoned walk stay IN_SEGMENT and may still be
// claimed by a later walk; reaching an ASSIGNED node ends that walk.

package topology

import (
	"fmt"
	"slices"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/knitnet/core"
)

type segState uint8

const (
	unvisited segState = iota
	inSegment
	assigned
)

// SegmentReport summarises one AssignSegments run.
type SegmentReport struct {
	// Segments lists every id assigned, in creation order.
	Segments []core.SegmentID
	// Unassigned lists weft edges that no walk could close between two end nodes.
	Unassigned []core.EdgeKey
	// Interior counts the nodes that received a segment id.
	Interior int
}

// segmenter holds the state of one AssignSegments run.
type segmenter struct {
	g      *core.Graph
	state  map[core.NodeID]segState
	counts map[[2]core.NodeID]int
	report *SegmentReport
}

// AssignSegments walks the weft chains leaving every end node, in (row, num)
// order, and tags each chain that reaches another end node with
// SegmentID{min, max, index}. index counts earlier segments between the same
// pair of end nodes. Interior nodes and all edges of the chain receive the id.
//
// A walk continues only while exactly one unsegmented weft edge leads to a
// node not yet on the walk; anything else leaves the chain unassigned. Such
// edges are reported, not treated as errors.
//
// Errors: ErrTopology (no weft edges), ErrNoEndNodes.
// Complexity: O(V + E log Δ).
func AssignSegments(g *core.Graph) (*SegmentReport, error) {
	const method = "AssignSegments"
	if len(g.WeftEdges()) == 0 {
		return nil, fmt.Errorf("%s: %w", method, ErrTopology)
	}
	ends := g.EndNodes()
	if len(ends) == 0 {
		return nil, fmt.Errorf("%s: %w", method, ErrNoEndNodes)
	}

	s := &segmenter{
		g:      g,
		state:  make(map[core.NodeID]segState),
		counts: make(map[[2]core.NodeID]int),
		report: &SegmentReport{},
	}
	for _, n := range g.Nodes() {
		if n.HasSegment() {
			s.state[n.ID] = assigned
		}
	}
	for _, e := range g.WeftEdges() {
		if e.Segment == nil {
			continue
		}
		key := [2]core.NodeID{e.Segment.Start, e.Segment.End}
		s.counts[key] = max(s.counts[key], e.Segment.Index+1)
	}

	for _, end := range ends {
		if err := s.fromEnd(end.ID); err != nil {
			return nil, fmt.Errorf("%s: end node %d: %w", method, end.ID, err)
		}
	}

	for _, e := range g.WeftEdges() {
		if e.Segment == nil {
			s.report.Unassigned = append(s.report.Unassigned, e.Key)
		}
	}
	slices.SortFunc(s.report.Unassigned, compareKeys)
	if n := len(s.report.Unassigned); n > 0 {
		klog.Warningf("%s: %d weft edges left without a segment: %v", method, n, s.report.Unassigned)
	}

	return s.report, nil
}

// fromEnd starts one walk per unsegmented weft edge of end, ordered by the
// far endpoint's id.
func (s *segmenter) fromEnd(end core.NodeID) error {
	edges, err := s.g.EdgesIncidentTo(end, core.RoleWeft)
	if err != nil {
		return err
	}
	slices.SortFunc(edges, func(a, b core.Edge) int {
		oa, _ := a.Key.Other(end)
		ob, _ := b.Key.Other(end)
		return int(oa) - int(ob)
	})

	for _, e := range edges {
		cur, err := s.g.Edge(e.Key)
		if err != nil {
			return err
		}
		if cur.Segment != nil {
			continue
		}
		other, _ := e.Key.Other(end)
		n, err := s.g.Node(other)
		if err != nil {
			return err
		}
		if n.End {
			if err = s.close(end, other, nil, []core.EdgeKey{e.Key}); err != nil {
				return err
			}
			continue
		}
		if err = s.walk(end, n, e.Key); err != nil {
			return err
		}
	}

	return nil
}

// walk follows the weft chain from first (reached from end over via) until
// it meets another end node or becomes ambiguous.
func (s *segmenter) walk(end core.NodeID, first core.Node, via core.EdgeKey) error {
	if s.state[first.ID] == assigned {
		return nil
	}

	path := []core.NodeID{first.ID}
	edges := []core.EdgeKey{via}
	onPath := map[core.NodeID]bool{end: true, first.ID: true}
	s.state[first.ID] = inSegment

	cur := first.ID
	for {
		out, err := s.g.EdgesIncidentTo(cur, core.RoleWeft)
		if err != nil {
			return err
		}
		var next []core.Edge
		for _, e := range out {
			other, _ := e.Key.Other(cur)
			if e.Segment == nil && !onPath[other] {
				next = append(next, e)
			}
		}
		if len(next) != 1 {
			klog.V(2).Infof("segment walk from %d stops at %d: %d candidate edges", end, cur, len(next))
			return nil
		}

		other, _ := next[0].Key.Other(cur)
		n, err := s.g.Node(other)
		if err != nil {
			return err
		}
		edges = append(edges, next[0].Key)
		if n.End {
			return s.close(end, other, path, edges)
		}
		if s.state[other] == assigned {
			return nil
		}

		s.state[other] = inSegment
		path = append(path, other)
		onPath[other] = true
		cur = other
	}
}

// close numbers a new segment between a and b and tags the walk with it.
func (s *segmenter) close(a, b core.NodeID, nodes []core.NodeID, edges []core.EdgeKey) error {
	pair := core.NewSegmentID(a, b, 0)
	key := [2]core.NodeID{pair.Start, pair.End}
	seg := core.NewSegmentID(a, b, s.counts[key])
	s.counts[key]++

	for _, k := range edges {
		if err := s.g.SetEdgeSegment(k, &seg); err != nil {
			return err
		}
	}
	for _, id := range nodes {
		if err := s.g.SetNodeSegment(id, &seg); err != nil {
			return err
		}
		s.state[id] = assigned
	}
	s.report.Segments = append(s.report.Segments, seg)
	s.report.Interior += len(nodes)

	return nil
}

// ConnectSegmentNodes chains the start end node, the nodes carrying each
// segment id (in (row, num) order) and the closing end node with weft edges
// tagged with that segment. Pairs that are already linked are overwritten.
//
// Complexity: O(S·V) for S segments.
func ConnectSegmentNodes(g *core.Graph) error {
	const method = "ConnectSegmentNodes"

	var segs []core.SegmentID
	for _, e := range g.WeftEdges() {
		if e.Segment != nil {
			segs = append(segs, *e.Segment)
		}
	}
	slices.SortFunc(segs, core.SegmentID.Compare)
	segs = slices.Compact(segs)

	for _, seg := range segs {
		chain := []core.NodeID{seg.Start}
		for _, n := range g.NodesOnSegment(seg) {
			chain = append(chain, n.ID)
		}
		chain = append(chain, seg.End)

		for i := 1; i < len(chain); i++ {
			sg := seg
			if err := g.AddWeftEdge(chain[i-1], chain[i], &sg); err != nil {
				return fmt.Errorf("%s: segment %s: %w", method, seg, err)
			}
		}
	}

	return nil
}

func compareKeys(a, b core.EdgeKey) int {
	switch {
	case a.U != b.U:
		return int(a.U) - int(b.U)
	case a.V != b.V:
		return int(a.V) - int(b.V)
	default:
		return a.Slot - b.Slot
	}
}
