// Package dfs defines types and options for depth-first search traversal,
// including cancellation, a pre-order hook, edge-role filtering and
// full-graph (forest) traversal.
package dfs

import (
	"context"
	"errors"

	"github.com/katalvlaran/knitnet/core"
)

// VertexState represents the DFS visitation state of a node.
const (
	White = iota // White: the node has not been visited yet.
	Gray         // Gray: the node is in the recursion stack (visiting).
	Black        // Black: the node and all its descendants have been fully explored.
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed to DFS,
	// Components or DetectCycles.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartNodeNotFound indicates that the specified start node
	// does not exist in the graph.
	ErrStartNodeNotFound = errors.New("dfs: start node not found")
)

// Option configures optional behavior of DFS traversal.
// Use with DFS(g, start, opts...).
type Option func(*DFSOptions)

// DFSOptions holds configurable parameters for DFS traversal.
// Complexity remains O(V+E) when hooks are O(1).
type DFSOptions struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is invoked immediately upon discovering a node (pre-order).
	// Returning an error aborts traversal with that error.
	OnVisit func(id core.NodeID) error

	// Roles restricts traversal to edges of these roles. Empty means all roles.
	Roles []core.Role

	// FullTraversal, if true, runs DFS from every unvisited node in (row, num)
	// order, covering disconnected components.
	FullTraversal bool
}

// DefaultOptions returns a DFSOptions struct with:
//   - Background context
//   - No hook
//   - Every edge role
//   - Single-source traversal
func DefaultOptions() DFSOptions {
	return DFSOptions{Ctx: context.Background()}
}

// WithContext returns an Option that sets the Context for DFS traversal.
// Passing a nil context has no effect (Background is retained).
func WithContext(ctx context.Context) Option {
	return func(o *DFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit returns an Option that installs fn as a pre-order hook.
func WithOnVisit(fn func(id core.NodeID) error) Option {
	return func(o *DFSOptions) {
		o.OnVisit = fn
	}
}

// WithRoles returns an Option that restricts traversal to the given edge roles.
func WithRoles(roles ...core.Role) Option {
	return func(o *DFSOptions) {
		o.Roles = append([]core.Role(nil), roles...)
	}
}

// WithFullTraversal returns an Option that enables full-graph traversal.
func WithFullTraversal() Option {
	return func(o *DFSOptions) {
		o.FullTraversal = true
	}
}

// DFSResult captures the outcome of a depth-first traversal.
type DFSResult struct {
	// Order records nodes in the sequence they finished (post-order).
	Order []core.NodeID

	// Depth maps each node to its distance (#edges) from its tree root.
	Depth map[core.NodeID]int

	// Parent maps each node to the node from which it was first discovered.
	// Roots do not appear in this map.
	Parent map[core.NodeID]core.NodeID

	// Visited flags which nodes were reached during the traversal.
	Visited map[core.NodeID]bool
}
