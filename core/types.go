// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Node, Edge, Role, SegmentID, EdgeKey, Graph and sentinel errors.

package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/katalvlaran/knitnet/geometry"
)

// Sentinel errors for core graph operations.
var (
	// ErrDuplicateNode indicates the node id or its (row, num) pair is already taken.
	ErrDuplicateNode = errors.New("core: duplicate node")

	// ErrUnknownNode indicates an operation referenced a node that does not exist.
	ErrUnknownNode = errors.New("core: unknown node")

	// ErrInvalidPosition indicates a negative row or num.
	ErrInvalidPosition = errors.New("core: invalid node position")

	// ErrLoopNotAllowed indicates an edge from a node to itself.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrEdgeNotFound indicates no edge exists under the given key.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrInvalidTraversal indicates the from-node is not an endpoint of the edge.
	ErrInvalidTraversal = errors.New("core: node is not an endpoint of edge")

	// ErrSegmentMismatch indicates a segment id whose end nodes differ from the edge endpoints.
	ErrSegmentMismatch = errors.New("core: segment does not match edge endpoints")
)

// NodeID identifies a node within one graph.
type NodeID int

// Role is the structural role of an edge. Exactly one role applies per edge.
type Role uint8

const (
	// RoleContour links consecutive points of one row. No weft/warp semantics.
	RoleContour Role = iota
	// RoleWeft links stitches sideways; may carry a segment id.
	RoleWeft
	// RoleWarp links corresponding stitches row to row.
	RoleWarp
	// RoleSegment stands for a whole weft run between two end nodes.
	RoleSegment
)

// String returns the lower-case role name.
func (r Role) String() string {
	switch r {
	case RoleContour:
		return "contour"
	case RoleWeft:
		return "weft"
	case RoleWarp:
		return "warp"
	case RoleSegment:
		return "segment"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// SegmentID names a run of weft edges between two end nodes.
// Start is always the smaller node id.
type SegmentID struct {
	Start NodeID
	End   NodeID
	Index int
}

// NewSegmentID orders a and b so that Start <= End.
func NewSegmentID(a, b NodeID, index int) SegmentID {
	if a > b {
		a, b = b, a
	}

	return SegmentID{Start: a, End: b, Index: index}
}

// Less orders segment ids by (Start, End, Index).
func (s SegmentID) Less(o SegmentID) bool {
	if s.Start != o.Start {
		return s.Start < o.Start
	}
	if s.End != o.End {
		return s.End < o.End
	}

	return s.Index < o.Index
}

// Compare returns -1, 0 or +1 following Less.
func (s SegmentID) Compare(o SegmentID) int {
	switch {
	case s.Less(o):
		return -1
	case o.Less(s):
		return 1
	default:
		return 0
	}
}

// String renders "(start,end,index)".
func (s SegmentID) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s.Start, s.End, s.Index)
}

// Node is one stitch position.
type Node struct {
	ID      NodeID
	Point   geometry.Point
	Row     int
	Num     int
	Leaf    bool
	End     bool
	Start   bool
	Segment *SegmentID
}

// clone returns a copy that shares no pointers with n.
func (n *Node) clone() Node {
	out := *n
	out.Segment = cloneSegment(n.Segment)

	return out
}

// HasSegment reports whether segmentation assigned an id to the node.
func (n Node) HasSegment() bool { return n.Segment != nil }

// EdgeKey identifies an undirected edge. U <= V always holds.
// Slot 0 is shared by contour/weft/warp edges; segment edges use Index+1.
type EdgeKey struct {
	U    NodeID
	V    NodeID
	Slot int
}

// Key returns the slot-0 key between a and b.
func Key(a, b NodeID) EdgeKey {
	if a > b {
		a, b = b, a
	}

	return EdgeKey{U: a, V: b}
}

// SegmentKey returns the key under which seg is stored as a segment edge.
func SegmentKey(seg SegmentID) EdgeKey {
	return EdgeKey{U: seg.Start, V: seg.End, Slot: seg.Index + 1}
}

// Other returns the endpoint opposite n, or false if n is not an endpoint.
func (k EdgeKey) Other(n NodeID) (NodeID, bool) {
	switch n {
	case k.U:
		return k.V, true
	case k.V:
		return k.U, true
	default:
		return 0, false
	}
}

// Has reports whether n is an endpoint of k.
func (k EdgeKey) Has(n NodeID) bool { return k.U == n || k.V == n }

// String renders "u-v" or "u-v#slot".
func (k EdgeKey) String() string {
	if k.Slot == 0 {
		return fmt.Sprintf("%d-%d", k.U, k.V)
	}

	return fmt.Sprintf("%d-%d#%d", k.U, k.V, k.Slot)
}

// Edge is a typed connection between two nodes.
type Edge struct {
	Key     EdgeKey
	Seq     uint64 // first-insertion order
	Role    Role
	Segment *SegmentID
}

func (e *Edge) clone() Edge {
	out := *e
	out.Segment = cloneSegment(e.Segment)

	return out
}

func cloneSegment(s *SegmentID) *SegmentID {
	if s == nil {
		return nil
	}
	c := *s

	return &c
}

// GraphOption configures a Graph before use.
type GraphOption func(g *Graph)

// WithName labels the graph; the label prefixes String().
func WithName(name string) GraphOption {
	return func(g *Graph) { g.name = name }
}

// WithCourseHeight records the course height the rows were sampled with.
func WithCourseHeight(h float64) GraphOption {
	return func(g *Graph) { g.courseHeight = h }
}

// Graph is the in-memory Knit Graph.
//
// nodes and edges are the catalogs; adjacency maps a node to the keys of all
// incident edges; byPos orders node ids by (row, num).
type Graph struct {
	mu sync.RWMutex

	name         string
	courseHeight float64

	nodes     map[NodeID]*Node
	edges     map[EdgeKey]*Edge
	adjacency map[NodeID]map[EdgeKey]struct{}
	byPos     *redblacktree.Tree

	nextSeq uint64
}

// NewGraph creates an empty Graph.
// Complexity: O(1).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		nodes:     make(map[NodeID]*Node),
		edges:     make(map[EdgeKey]*Edge),
		adjacency: make(map[NodeID]map[EdgeKey]struct{}),
		byPos:     newPositionIndex(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// NodeOption sets optional node attributes in AddNode.
type NodeOption func(n *Node)

// WithSegment assigns a segment id at creation.
func WithSegment(seg SegmentID) NodeOption {
	return func(n *Node) { n.Segment = &seg }
}

// WithStart marks the node as lying on a designated starting row.
func WithStart() NodeOption {
	return func(n *Node) { n.Start = true }
}
