package dfs

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/knitnet/core"
)

// Components returns the connected components of g using only edges of role.
// Each component is sorted by node id; components are ordered by their
// first node in (row, num) order. Nodes without such edges form singletons.
// opts may carry WithContext or WithOnVisit; the role filter is always role.
//
// Complexity: O(V + E log Δ).
func Components(g *core.Graph, role core.Role, opts ...Option) ([][]core.NodeID, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	opts = append(slices.Clone(opts), WithRoles(role), WithFullTraversal())
	res, err := DFS(g, 0, opts...)
	if err != nil {
		return nil, fmt.Errorf("dfs: Components(%s): %w", role, err)
	}

	// Every tree root is the first node of its component in (row, num) order.
	roots := make(map[core.NodeID]core.NodeID)
	rootOf := func(id core.NodeID) core.NodeID {
		var path []core.NodeID
		root := id
		for {
			if r, ok := roots[root]; ok {
				root = r
				break
			}
			parent, ok := res.Parent[root]
			if !ok {
				break
			}
			path = append(path, root)
			root = parent
		}
		for _, p := range path {
			roots[p] = root
		}

		return root
	}

	index := make(map[core.NodeID]int)
	var comps [][]core.NodeID
	for _, n := range g.Nodes() {
		root := rootOf(n.ID)
		i, ok := index[root]
		if !ok {
			i = len(comps)
			index[root] = i
			comps = append(comps, nil)
		}
		comps[i] = append(comps[i], n.ID)
	}
	for _, c := range comps {
		slices.Sort(c)
	}

	return comps, nil
}
