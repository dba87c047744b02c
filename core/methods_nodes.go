// SPDX-License-Identifier: MIT
//
// File: methods_nodes.go
// Role: Node lifecycle, mutators and row-ordered views.
//
// Determinism:
//   - Every multi-node view is ordered by (row, num).

package core

import (
	"fmt"

	"github.com/katalvlaran/knitnet/geometry"
)

// AddNode inserts a stitch node.
//
// Errors:
//   - ErrInvalidPosition if row or num is negative.
//   - ErrDuplicateNode if id or (row, num) is already present.
//
// Complexity: O(log V).
func (g *Graph) AddNode(id NodeID, p geometry.Point, row, num int, leaf, end bool, opts ...NodeOption) error {
	if row < 0 || num < 0 {
		return fmt.Errorf("AddNode(%d): row=%d num=%d: %w", id, row, num, ErrInvalidPosition)
	}
	n := &Node{ID: id, Point: p, Row: row, Num: num, Leaf: leaf, End: end}
	for _, opt := range opts {
		opt(n)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[id]; exists {
		return fmt.Errorf("AddNode(%d): %w", id, ErrDuplicateNode)
	}
	key := position{row: row, num: num}
	if other, taken := g.byPos.Get(key); taken {
		return fmt.Errorf("AddNode(%d): (row=%d, num=%d) held by node %d: %w", id, row, num, other, ErrDuplicateNode)
	}
	g.nodes[id] = n
	g.adjacency[id] = make(map[EdgeKey]struct{})
	g.byPos.Put(key, id)

	return nil
}

// HasNode reports whether id exists.
func (g *Graph) HasNode(id NodeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[id]

	return ok
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id NodeID) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, fmt.Errorf("Node(%d): %w", id, ErrUnknownNode)
	}

	return n.clone(), nil
}

// NodeAt returns the node at (row, num).
func (g *Graph) NodeAt(row, num int) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.byPos.Get(position{row: row, num: num})
	if !ok {
		return Node{}, fmt.Errorf("NodeAt(%d,%d): %w", row, num, ErrUnknownNode)
	}

	return g.nodes[v.(NodeID)].clone(), nil
}

// Order returns the number of nodes.
func (g *Graph) Order() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// SetEnd sets the end flag of a node.
func (g *Graph) SetEnd(id NodeID, end bool) error {
	return g.mutateNode("SetEnd", id, func(n *Node) { n.End = end })
}

// SetStart sets the start flag of a node.
func (g *Graph) SetStart(id NodeID, start bool) error {
	return g.mutateNode("SetStart", id, func(n *Node) { n.Start = start })
}

// SetNodeSegment assigns (or clears, with nil) the segment of a node.
func (g *Graph) SetNodeSegment(id NodeID, seg *SegmentID) error {
	return g.mutateNode("SetNodeSegment", id, func(n *Node) { n.Segment = cloneSegment(seg) })
}

func (g *Graph) mutateNode(method string, id NodeID, fn func(n *Node)) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%s(%d): %w", method, id, ErrUnknownNode)
	}
	fn(n)

	return nil
}

// Nodes returns all nodes ordered by (row, num).
// Complexity: O(V).
func (g *Graph) Nodes() []Node {
	return g.selectNodes(func(*Node) bool { return true })
}

// LeafNodes returns all leaf nodes ordered by (row, num).
func (g *Graph) LeafNodes() []Node {
	return g.selectNodes(func(n *Node) bool { return n.Leaf })
}

// EndNodes returns all end nodes ordered by (row, num).
func (g *Graph) EndNodes() []Node {
	return g.selectNodes(func(n *Node) bool { return n.End })
}

// NodesOnSegment returns the nodes carrying seg, ordered by (row, num).
func (g *Graph) NodesOnSegment(seg SegmentID) []Node {
	return g.selectNodes(func(n *Node) bool { return n.Segment != nil && *n.Segment == seg })
}

func (g *Graph) selectNodes(keep func(n *Node) bool) []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Node, 0, len(g.nodes))
	g.eachInOrder(func(n *Node) bool {
		if keep(n) {
			out = append(out, n.clone())
		}

		return true
	})

	return out
}

// NodesOnRow returns the nodes of one row ordered by num.
func (g *Graph) NodesOnRow(row int) []Node {
	return g.selectOnRow(row, func(*Node) bool { return true })
}

// LeavesOnRow returns the leaf nodes of one row ordered by num.
func (g *Graph) LeavesOnRow(row int) []Node {
	return g.selectOnRow(row, func(n *Node) bool { return n.Leaf })
}

// EndsOnRow returns the end nodes of one row ordered by num.
func (g *Graph) EndsOnRow(row int) []Node {
	return g.selectOnRow(row, func(n *Node) bool { return n.End })
}

func (g *Graph) selectOnRow(row int, keep func(n *Node) bool) []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Node
	g.eachOnRow(row, func(n *Node) {
		if keep(n) {
			out = append(out, n.clone())
		}
	})

	return out
}

// Rows returns the distinct row ids in ascending order.
func (g *Graph) Rows() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var rows []int
	g.eachInOrder(func(n *Node) bool {
		if len(rows) == 0 || rows[len(rows)-1] != n.Row {
			rows = append(rows, n.Row)
		}

		return true
	})

	return rows
}

// AllNodesByRow groups Nodes() by row; rows appear in ascending order.
func (g *Graph) AllNodesByRow() [][]Node {
	return groupByRow(g.Nodes())
}

// AllLeavesByRow groups LeafNodes() by row, skipping rows without leaves.
func (g *Graph) AllLeavesByRow() [][]Node {
	return groupByRow(g.LeafNodes())
}

// AllEndsByRow groups EndNodes() by row, skipping rows without end nodes.
func (g *Graph) AllEndsByRow() [][]Node {
	return groupByRow(g.EndNodes())
}

// groupByRow splits an already (row, num)-ordered slice at row changes.
func groupByRow(ordered []Node) [][]Node {
	var out [][]Node
	for i, n := range ordered {
		if i == 0 || ordered[i-1].Row != n.Row {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], n)
	}

	return out
}
