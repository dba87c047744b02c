// SPDX-License-Identifier: MIT
//
// File: trace.go
// Role: greedy segment-chain tracing until a warp edge.

package mapping

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/knitnet/core"
)

// vertical returns the signed step from a to b: the row difference when the
// rows differ, otherwise the num difference (warp edges seeded inside one row).
func vertical(a, b core.Node) int {
	if a.Row != b.Row {
		return b.Row - a.Row
	}

	return b.Num - a.Num
}

// TraceSegmentsUntilWarp extends seed segment by segment until the current
// segment's terminal node (its end, or its start when byEnd is set) has a
// warp edge pointing one step up (or down, with down set), or is a leaf
// with exactly one warp edge.
//
// While not terminated the walk takes the lowest segment starting at the
// terminal node (ending at it, when byEnd is set) that is not already part
// of the chain; without such a segment it stops where it is. No alternative
// is explored. With byEnd the chain is returned first-to-last, i.e. reversed.
//
// Errors: ErrEmptyChain.
// Complexity: O(S · Δ) for S segments in g.
func TraceSegmentsUntilWarp(g *core.Graph, seed []core.SegmentID, down, byEnd bool) ([]core.SegmentID, error) {
	chain, _, err := trace(g, seed, down, byEnd)

	return chain, err
}

// trace also reports whether the walk met its warp condition (false: dangling).
func trace(g *core.Graph, seed []core.SegmentID, down, byEnd bool) ([]core.SegmentID, bool, error) {
	if len(seed) == 0 {
		return nil, false, fmt.Errorf("TraceSegmentsUntilWarp: %w", ErrEmptyChain)
	}
	want := 1
	if down {
		want = -1
	}

	chain := slices.Clone(seed)
	inChain := make(map[core.SegmentID]bool, len(chain))
	for _, s := range chain {
		inChain[s] = true
	}

	terminated := false
	for {
		cur := chain[len(chain)-1]
		term := cur.End
		if byEnd {
			term = cur.Start
		}

		done, err := terminal(g, term, want)
		if err != nil {
			return nil, false, fmt.Errorf("TraceSegmentsUntilWarp: %w", err)
		}
		if done {
			terminated = true
			break
		}

		var cands []core.SegmentID
		if byEnd {
			cands, err = g.SegmentsByEnd(term)
		} else {
			cands, err = g.SegmentsByStart(term)
		}
		if err != nil {
			return nil, false, fmt.Errorf("TraceSegmentsUntilWarp: %w", err)
		}
		idx := slices.IndexFunc(cands, func(s core.SegmentID) bool { return !inChain[s] })
		if idx < 0 {
			break
		}
		chain = append(chain, cands[idx])
		inChain[cands[idx]] = true
	}

	if byEnd {
		slices.Reverse(chain)
	}

	return chain, terminated, nil
}

// terminal reports whether id ends a walk heading in direction want.
func terminal(g *core.Graph, id core.NodeID, want int) (bool, error) {
	n, err := g.Node(id)
	if err != nil {
		return false, err
	}
	warps, err := g.EdgesIncidentTo(id, core.RoleWarp)
	if err != nil {
		return false, err
	}
	if n.Leaf && len(warps) == 1 {
		return true, nil
	}
	for _, w := range warps {
		other, _ := w.Key.Other(id)
		on, err := g.Node(other)
		if err != nil {
			return false, err
		}
		if vertical(n, on) == want {
			return true, nil
		}
	}

	return false, nil
}
