// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle & queries: typed Add*Edge, role/segment mutators,
//       RemoveEdge, role-filtered views and TraverseEdge.
// Determinism:
//   - Role views return edges in first-insertion order (Edge.Seq asc).
//   - SegmentEdges returns edges sorted by SegmentID.
// Concurrency:
//   - Mutations under g.mu write lock; queries under g.mu read lock.

package core

import (
	"cmp"
	"fmt"
	"slices"
)

// AddContourEdge links two consecutive points of one row.
// Re-adding over an existing slot-0 edge overwrites its role (last write wins).
//
// Errors: ErrLoopNotAllowed, ErrUnknownNode.
// Complexity: O(1) amortized.
func (g *Graph) AddContourEdge(a, b NodeID) error {
	return g.putEdge("AddContourEdge", Key(a, b), RoleContour, nil)
}

// AddWeftEdge links two nodes sideways. seg may be nil (not yet segmented).
//
// Errors: ErrLoopNotAllowed, ErrUnknownNode.
// Complexity: O(1) amortized.
func (g *Graph) AddWeftEdge(a, b NodeID, seg *SegmentID) error {
	return g.putEdge("AddWeftEdge", Key(a, b), RoleWeft, seg)
}

// AddWarpEdge links two corresponding nodes.
//
// Errors: ErrLoopNotAllowed, ErrUnknownNode.
// Complexity: O(1) amortized.
func (g *Graph) AddWarpEdge(a, b NodeID) error {
	return g.putEdge("AddWarpEdge", Key(a, b), RoleWarp, nil)
}

// AddSegmentEdge stores seg as an edge between its two end nodes. Segments
// sharing both end nodes are kept in parallel, distinguished by seg.Index.
//
// Errors:
//   - ErrSegmentMismatch if {a, b} is not {seg.Start, seg.End} or seg.Index < 0.
//   - ErrLoopNotAllowed, ErrUnknownNode.
//
// Complexity: O(1) amortized.
func (g *Graph) AddSegmentEdge(a, b NodeID, seg SegmentID) error {
	k := Key(a, b)
	if k.U != seg.Start || k.V != seg.End || seg.Index < 0 {
		return fmt.Errorf("AddSegmentEdge(%d,%d): segment %s: %w", a, b, seg, ErrSegmentMismatch)
	}

	return g.putEdge("AddSegmentEdge", SegmentKey(seg), RoleSegment, &seg)
}

// putEdge inserts or overwrites the edge under k.
func (g *Graph) putEdge(method string, k EdgeKey, role Role, seg *SegmentID) error {
	if k.U == k.V {
		return fmt.Errorf("%s(%d,%d): %w", method, k.U, k.V, ErrLoopNotAllowed)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[k.U]; !ok {
		return fmt.Errorf("%s(%d,%d): node %d: %w", method, k.U, k.V, k.U, ErrUnknownNode)
	}
	if _, ok := g.nodes[k.V]; !ok {
		return fmt.Errorf("%s(%d,%d): node %d: %w", method, k.U, k.V, k.V, ErrUnknownNode)
	}

	if e, exists := g.edges[k]; exists {
		e.Role = role
		e.Segment = cloneSegment(seg)

		return nil
	}

	g.nextSeq++
	g.edges[k] = &Edge{Key: k, Seq: g.nextSeq, Role: role, Segment: cloneSegment(seg)}
	g.adjacency[k.U][k] = struct{}{}
	g.adjacency[k.V][k] = struct{}{}

	return nil
}

// HasEdge reports whether an edge is stored under k.
func (g *Graph) HasEdge(k EdgeKey) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.edges[k]

	return ok
}

// Edge returns a copy of the edge stored under k.
func (g *Graph) Edge(k EdgeKey) (Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.edges[k]
	if !ok {
		return Edge{}, fmt.Errorf("Edge(%s): %w", k, ErrEdgeNotFound)
	}

	return e.clone(), nil
}

// Size returns the number of edges of all roles.
func (g *Graph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// SetEdgeRole rewrites the role of an existing edge. Leaving RoleWeft clears
// the segment id. RoleSegment is only valid on segment slots and vice versa.
func (g *Graph) SetEdgeRole(k EdgeKey, role Role) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.edges[k]
	if !ok {
		return fmt.Errorf("SetEdgeRole(%s): %w", k, ErrEdgeNotFound)
	}
	if (role == RoleSegment) != (k.Slot > 0) {
		return fmt.Errorf("SetEdgeRole(%s, %s): %w", k, role, ErrSegmentMismatch)
	}
	if role != RoleWeft && role != RoleSegment {
		e.Segment = nil
	}
	e.Role = role

	return nil
}

// SetEdgeSegment assigns (or clears, with nil) the segment id of a weft edge.
func (g *Graph) SetEdgeSegment(k EdgeKey, seg *SegmentID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.edges[k]
	if !ok {
		return fmt.Errorf("SetEdgeSegment(%s): %w", k, ErrEdgeNotFound)
	}
	if e.Role != RoleWeft {
		return fmt.Errorf("SetEdgeSegment(%s): role %s: %w", k, e.Role, ErrSegmentMismatch)
	}
	e.Segment = cloneSegment(seg)

	return nil
}

// RemoveEdge deletes the edge stored under k.
func (g *Graph) RemoveEdge(k EdgeKey) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.edges[k]; !ok {
		return fmt.Errorf("RemoveEdge(%s): %w", k, ErrEdgeNotFound)
	}
	delete(g.edges, k)
	delete(g.adjacency[k.U], k)
	delete(g.adjacency[k.V], k)

	return nil
}

// ContourEdges returns all contour edges in insertion order.
func (g *Graph) ContourEdges() []Edge { return g.edgesWithRole(RoleContour) }

// WeftEdges returns all weft edges in insertion order.
func (g *Graph) WeftEdges() []Edge { return g.edgesWithRole(RoleWeft) }

// WarpEdges returns all warp edges in insertion order.
func (g *Graph) WarpEdges() []Edge { return g.edgesWithRole(RoleWarp) }

// SegmentEdges returns all segment edges sorted by segment id.
func (g *Graph) SegmentEdges() []Edge {
	out := g.edgesWithRole(RoleSegment)
	slices.SortFunc(out, func(a, b Edge) int { return a.Segment.Compare(*b.Segment) })

	return out
}

func (g *Graph) edgesWithRole(role Role) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Edge
	for _, e := range g.edges {
		if e.Role == role {
			out = append(out, e.clone())
		}
	}
	sortBySeq(out)

	return out
}

// EdgesIncidentTo returns the edges of the given role touching id, in
// insertion order.
//
// Errors: ErrUnknownNode.
// Complexity: O(deg(id) log deg(id)).
func (g *Graph) EdgesIncidentTo(id NodeID, role Role) ([]Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	adj, ok := g.adjacency[id]
	if !ok {
		return nil, fmt.Errorf("EdgesIncidentTo(%d): %w", id, ErrUnknownNode)
	}

	return g.incident(adj, role), nil
}

// incident collects edges of role from adj. Caller holds g.mu.
func (g *Graph) incident(adj map[EdgeKey]struct{}, role Role) []Edge {
	var out []Edge
	for k := range adj {
		if e := g.edges[k]; e.Role == role {
			out = append(out, e.clone())
		}
	}
	sortBySeq(out)

	return out
}

// Degree returns the number of edges of any role touching id.
func (g *Graph) Degree(id NodeID) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	adj, ok := g.adjacency[id]
	if !ok {
		return 0, fmt.Errorf("Degree(%d): %w", id, ErrUnknownNode)
	}

	return len(adj), nil
}

// Neighbors returns the distinct nodes adjacent to id over any role, ascending.
func (g *Graph) Neighbors(id NodeID) ([]NodeID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	adj, ok := g.adjacency[id]
	if !ok {
		return nil, fmt.Errorf("Neighbors(%d): %w", id, ErrUnknownNode)
	}
	seen := make(map[NodeID]struct{}, len(adj))
	out := make([]NodeID, 0, len(adj))
	for k := range adj {
		other, _ := k.Other(id)
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		out = append(out, other)
	}
	slices.Sort(out)

	return out, nil
}

// TraverseEdge returns the endpoint of k opposite from.
//
// Errors:
//   - ErrEdgeNotFound if k is not stored.
//   - ErrInvalidTraversal if from is not an endpoint of k.
func (g *Graph) TraverseEdge(from NodeID, k EdgeKey) (NodeID, error) {
	g.mu.RLock()
	_, ok := g.edges[k]
	g.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("TraverseEdge(%d, %s): %w", from, k, ErrEdgeNotFound)
	}
	other, ok := k.Other(from)
	if !ok {
		return 0, fmt.Errorf("TraverseEdge(%d, %s): %w", from, k, ErrInvalidTraversal)
	}

	return other, nil
}

func sortBySeq(es []Edge) {
	slices.SortFunc(es, func(a, b Edge) int { return cmp.Compare(a.Seq, b.Seq) })
}
