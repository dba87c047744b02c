// SPDX-License-Identifier: MIT
//
// File: methods_clone.go
// Role: Cloning and filtered copies of graph instances.
// Determinism:
//   - Clone/Filter carry over nextSeq and every Edge.Seq, so insertion-order
//     views of the copy match the source.
// Concurrency:
//   - Read lock for snapshotting; no mutation of the source graph.

package core

// CloneEmpty returns a new Graph with identical configuration and nodes, but no edges.
//
// Complexity: O(V log V).
func (g *Graph) CloneEmpty() *Graph {
	return g.Filter(nil, func(Edge) bool { return false })
}

// Clone returns a deep copy of the Graph: configuration, nodes, edges and indexes.
// Builders mutate in place; clone first to branch.
//
// Complexity: O(V log V + E).
func (g *Graph) Clone() *Graph {
	return g.Filter(nil, nil)
}

// Filter returns a deep copy that keeps only the nodes accepted by keepNode
// and the edges accepted by keepEdge whose endpoints both survive.
// A nil predicate keeps everything.
//
// Complexity: O(V log V + E).
func (g *Graph) Filter(keepNode func(Node) bool, keepEdge func(Edge) bool) *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := NewGraph(WithName(g.name), WithCourseHeight(g.courseHeight))
	out.nextSeq = g.nextSeq

	for id, n := range g.nodes {
		c := n.clone()
		if keepNode != nil && !keepNode(c) {
			continue
		}
		out.nodes[id] = &c
		out.adjacency[id] = make(map[EdgeKey]struct{})
		out.byPos.Put(position{row: c.Row, num: c.Num}, id)
	}

	for k, e := range g.edges {
		if _, ok := out.nodes[k.U]; !ok {
			continue
		}
		if _, ok := out.nodes[k.V]; !ok {
			continue
		}
		c := e.clone()
		if keepEdge != nil && !keepEdge(c) {
			continue
		}
		out.edges[k] = &c
		out.adjacency[k.U][k] = struct{}{}
		out.adjacency[k.V][k] = struct{}{}
	}

	return out
}

// Clear removes all edges and nodes, keeping name and course height.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = make(map[NodeID]*Node)
	g.edges = make(map[EdgeKey]*Edge)
	g.adjacency = make(map[NodeID]map[EdgeKey]struct{})
	g.byPos = newPositionIndex()
	g.nextSeq = 0
}
