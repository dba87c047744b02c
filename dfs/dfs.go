// Package dfs implements depth-first search (single-source and forest) on core.Graph.
// It supports cancellation, a pre-order hook, edge-role filtering and
// full-graph traversal.
//
// Complexity:
//
//   - Time:   O(V + E log Δ) for traversal (neighbours are sorted per node).
//   - Memory: O(V) for recursion stack and metadata maps.
//
// Errors:
//
//   - ErrGraphNil             if g is nil.
//   - ErrStartNodeNotFound    if start is missing.
//   - context.Canceled        if ctx is done.
//   - any error returned by OnVisit.
package dfs

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/knitnet/core"
)

// allRoles is the default role filter.
var allRoles = []core.Role{core.RoleContour, core.RoleWeft, core.RoleWarp, core.RoleSegment}

// dfsWalker encapsulates state during DFS.
type dfsWalker struct {
	graph *core.Graph
	opts  DFSOptions
	res   *DFSResult
}

// DFS performs depth-first search on graph g. If opts include WithFullTraversal,
// it covers all disconnected components; otherwise, it starts only from start.
// Neighbours are explored in ascending id order.
func DFS(g *core.Graph, start core.NodeID, opts ...Option) (*DFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}
	if len(dopts.Roles) == 0 {
		dopts.Roles = allRoles
	}

	if !dopts.FullTraversal && !g.HasNode(start) {
		return nil, fmt.Errorf("dfs: DFS(%d): %w", start, ErrStartNodeNotFound)
	}

	nodes := g.Nodes()
	res := &DFSResult{
		Order:   make([]core.NodeID, 0, len(nodes)),
		Depth:   make(map[core.NodeID]int, len(nodes)),
		Parent:  make(map[core.NodeID]core.NodeID, len(nodes)),
		Visited: make(map[core.NodeID]bool, len(nodes)),
	}
	walker := &dfsWalker{graph: g, opts: dopts, res: res}

	if dopts.FullTraversal {
		for _, n := range nodes {
			if !res.Visited[n.ID] {
				if err := walker.traverse(n.ID, 0); err != nil {
					return res, err
				}
			}
		}

		return res, nil
	}

	if err := walker.traverse(start, 0); err != nil {
		return res, err
	}

	return res, nil
}

// traverse visits node id at given depth, recursing to neighbours.
func (w *dfsWalker) traverse(id core.NodeID, depth int) error {
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	w.res.Visited[id] = true
	w.res.Depth[id] = depth

	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			w.res.Order = nil
			return fmt.Errorf("dfs: OnVisit hook for %d: %w", id, err)
		}
	}

	nbs, err := neighbours(w.graph, id, w.opts.Roles)
	if err != nil {
		w.res.Order = nil
		return fmt.Errorf("dfs: neighbours(%d): %w", id, err)
	}

	for _, nid := range nbs {
		if !w.res.Visited[nid] {
			w.res.Parent[nid] = id
			if err = w.traverse(nid, depth+1); err != nil {
				return err
			}
		}
	}

	w.res.Order = append(w.res.Order, id)

	return nil
}

// neighbours returns the distinct nodes reachable from id over edges of the
// given roles, ascending.
func neighbours(g *core.Graph, id core.NodeID, roles []core.Role) ([]core.NodeID, error) {
	var out []core.NodeID
	for _, role := range roles {
		edges, err := g.EdgesIncidentTo(id, role)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			other, _ := e.Key.Other(id)
			out = append(out, other)
		}
	}
	slices.Sort(out)

	return slices.Compact(out), nil
}
