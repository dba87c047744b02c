// SPDX-License-Identifier: MIT
//
// File: seed.go
// Role: leaf weft seeding and warp/end-node seeding.

package topology

import (
	"fmt"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/knitnet/core"
)

// warpDegreeLimit and weftDegreeLimit mark a node as structural when exceeded.
const (
	warpDegreeLimit = 4
	weftDegreeLimit = 2
)

// contiguousRows returns the graph's nodes grouped by row, checking that at
// least two rows exist and that they are numbered 0..n-1.
func contiguousRows(method string, g *core.Graph) ([][]core.Node, error) {
	rows := g.AllNodesByRow()
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: %d rows: %w", method, len(rows), ErrEmptyNetwork)
	}
	for i, r := range rows {
		if r[0].Row != i {
			return nil, fmt.Errorf("%s: %w", method, RowError{Index: i, Row: r[0].Row})
		}
	}

	return rows, nil
}

func leavesOf(row []core.Node) []core.Node {
	var out []core.Node
	for _, n := range row {
		if n.Leaf {
			out = append(out, n)
		}
	}

	return out
}

// SeedLeafConnections links the first leaf of every row to the first leaf of
// the next row, and the last leaf to the last leaf, with weft edges.
// Rows without leaves are skipped.
//
// Errors: ErrEmptyNetwork, ErrNonContiguousRows.
// Complexity: O(V).
func SeedLeafConnections(g *core.Graph) error {
	const method = "SeedLeafConnections"
	rows, err := contiguousRows(method, g)
	if err != nil {
		return err
	}

	for r := 0; r+1 < len(rows); r++ {
		a, b := leavesOf(rows[r]), leavesOf(rows[r+1])
		if len(a) == 0 || len(b) == 0 {
			continue
		}
		if err = g.AddWeftEdge(a[0].ID, b[0].ID, nil); err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}
		if err = g.AddWeftEdge(a[len(a)-1].ID, b[len(b)-1].ID, nil); err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}
	}
	klog.V(2).Infof("%s: linked leaves across %d row pairs", method, len(rows)-1)

	return nil
}

// SeedWarpEdges detects the structural end nodes of the given rows (nil means
// every row). A node is an end node when it lies on the first or last row of
// the set, carries more than two weft edges, or has more than four incident
// edges. Every non-weft edge at an end node is rewritten as warp and its
// other endpoint is marked as an end node too.
//
// The result only seeds segmentation; it is not the final warp connectivity.
//
// Complexity: O(V + E).
func SeedWarpEdges(g *core.Graph, rows []int) error {
	const method = "SeedWarpEdges"
	if rows == nil {
		rows = g.Rows()
	}

	for i, row := range rows {
		for _, n := range g.NodesOnRow(row) {
			deg, err := g.Degree(n.ID)
			if err != nil {
				return fmt.Errorf("%s: %w", method, err)
			}
			weft, err := g.EdgesIncidentTo(n.ID, core.RoleWeft)
			if err != nil {
				return fmt.Errorf("%s: %w", method, err)
			}
			if deg <= warpDegreeLimit && len(weft) <= weftDegreeLimit && i != 0 && i != len(rows)-1 {
				continue
			}
			if err = markEnd(g, n.ID); err != nil {
				return fmt.Errorf("%s: %w", method, err)
			}
		}
	}

	return nil
}

// markEnd flags id as an end node and turns its contour and warp edges into
// warp edges whose far endpoints become end nodes as well.
func markEnd(g *core.Graph, id core.NodeID) error {
	if err := g.SetEnd(id, true); err != nil {
		return err
	}
	for _, role := range []core.Role{core.RoleContour, core.RoleWarp} {
		edges, err := g.EdgesIncidentTo(id, role)
		if err != nil {
			return err
		}
		for _, e := range edges {
			if err = g.SetEdgeRole(e.Key, core.RoleWarp); err != nil {
				return err
			}
			other, _ := e.Key.Other(id)
			if err = g.SetEnd(other, true); err != nil {
				return err
			}
		}
	}

	return nil
}
