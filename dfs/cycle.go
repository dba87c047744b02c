// Package dfs implements cycle detection over the edges of one role of a
// core.Graph. DetectCycles records every back-edge cycle found by a
// three-colour depth-first search, skipping trivial backtracks along the
// edge just used, and produces the canonical minimal rotation of each cycle
// via Booth's algorithm. The final cycle list is sorted for deterministic output.
//
// Weft cycles matter to segmentation: a closed weft loop without an end node
// can never be split into segments and stays unassigned.
//
// Complexity:
//
//   - Time:   O(V + E + C·L)   (C=#cycles, L=avg cycle length)
//   - Memory: O(V + L_max)
package dfs

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/knitnet/core"
)

// DetectCycles inspects the role-restricted undirected graph for cycles.
// Returns (true, cycles, nil) if any cycles are found; (false, nil, nil) otherwise.
// Each cycle is closed: [v0, v1, ..., v0].
func DetectCycles(g *core.Graph, role core.Role) (bool, [][]core.NodeID, error) {
	if g == nil {
		return false, nil, nil
	}

	nodes := g.Nodes()
	state := make(map[core.NodeID]int, len(nodes))
	path := make([]core.NodeID, 0, len(nodes))
	seen := make(map[string]struct{})
	var cycles [][]core.NodeID

	for _, n := range nodes {
		if state[n.ID] == White {
			if err := cycleVisit(g, role, n.ID, nil, state, &path, seen, &cycles); err != nil {
				return false, nil, fmt.Errorf("dfs: DetectCycles: %w", err)
			}
		}
	}

	slices.SortFunc(cycles, func(a, b []core.NodeID) int { return slices.Compare(a, b) })

	if len(cycles) == 0 {
		return false, nil, nil
	}

	return true, cycles, nil
}

// cycleVisit performs recursive DFS from node id. via is the edge used to
// reach id (nil at roots); it is not walked back.
func cycleVisit(
	g *core.Graph,
	role core.Role,
	id core.NodeID,
	via *core.EdgeKey,
	state map[core.NodeID]int,
	path *[]core.NodeID,
	seen map[string]struct{},
	cycles *[][]core.NodeID,
) error {
	state[id] = Gray
	*path = append(*path, id)

	edges, err := g.EdgesIncidentTo(id, role)
	if err != nil {
		return fmt.Errorf("EdgesIncidentTo(%d): %w", id, err)
	}

	for _, e := range edges {
		if via != nil && e.Key == *via {
			continue
		}
		nbr, _ := e.Key.Other(id)

		switch state[nbr] {
		case White:
			k := e.Key
			if err = cycleVisit(g, role, nbr, &k, state, path, seen, cycles); err != nil {
				return err
			}
		case Gray:
			// parallel segment edges close a 2-cycle with the edge in via
			recordCycle(nbr, *path, seen, cycles)
		}
	}

	*path = (*path)[:len(*path)-1]
	state[id] = Black

	return nil
}

// recordCycle extracts and deduplicates the cycle that ends at start.
func recordCycle(start core.NodeID, path []core.NodeID, seen map[string]struct{}, cycles *[][]core.NodeID) {
	idx := slices.Index(path, start)
	base := slices.Clone(path[idx:])

	canon := canonical(base)
	sig := fmt.Sprint(canon)
	if _, exists := seen[sig]; exists {
		return
	}
	seen[sig] = struct{}{}
	*cycles = append(*cycles, canon)
}

// canonical picks the smaller of the minimal rotations of base and of its
// reversal, and closes it by repeating the first node.
func canonical(base []core.NodeID) []core.NodeID {
	rotF := MinimalRotation(base)
	rotB := MinimalRotation(Reverse(base))
	picker := rotF
	if slices.Compare(rotB, rotF) < 0 {
		picker = rotB
	}

	return append(slices.Clone(picker), picker[0])
}
