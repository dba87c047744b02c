// SPDX-License-Identifier: MIT
//
// File: propagate.go
// Role: weft propagation outward from a start row (first and second pass).
//
// Determinism:
//   - Rows are visited in order, nodes in num order.
//   - Equidistant candidates resolve to the lower num (LeastConnected first
//     prefers the lower degree).

package topology

import (
	"errors"
	"fmt"
	"slices"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/knitnet/core"
	"github.com/katalvlaran/knitnet/geometry"
)

// ErrNoGeometry indicates that neither an adapter nor a distance function
// was supplied where one is needed.
var ErrNoGeometry = errors.New("topology: no geometry adapter")

// propagator carries the resolved options through both passes.
type propagator struct {
	g    *core.Graph
	opts Options
	dist geometry.DistanceFunc
}

// PropagateWeftEdges connects the nodes of adjacent rows with weft edges,
// walking outward in both directions from the start row (default: the row
// with the longest total length reported by geo).
//
// First pass: every interior node of row r, in num order, tries its nearest
// interior node of row r±1 among those not left of the last accepted target.
// The target accepts while its weft degree is below MaxConnections and it is
// not yet weft-linked to row r.
// Second pass: every node still missing a weft edge toward a neighbouring row
// links to the nearest node of the window spanned by its previous neighbour's
// last connection and its next connected neighbour's first connection.
// Window nodes already holding MaxConnections weft edges are skipped; a node
// whose whole window is saturated stays unlinked and is reported through
// OnSaturated.
//
// Errors: ErrEmptyNetwork, ErrNonContiguousRows, ErrStartRow, ErrNoGeometry.
// Complexity: O(V·W) where W is the widest row.
func PropagateWeftEdges(g *core.Graph, geo geometry.Adapter, opts ...Option) error {
	const method = "PropagateWeftEdges"

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	rows, err := contiguousRows(method, g)
	if err != nil {
		return err
	}

	dist := o.Distance
	if dist == nil {
		if geo == nil {
			return fmt.Errorf("%s: %w", method, ErrNoGeometry)
		}
		dist = geometry.Nearest(geo, o.Precise)
	}

	start := o.StartRow
	switch {
	case start >= len(rows):
		return fmt.Errorf("%s: start row %d of %d: %w", method, start, len(rows), ErrStartRow)
	case start < 0:
		if geo == nil {
			return fmt.Errorf("%s: longest row: %w", method, ErrNoGeometry)
		}
		if start, err = geometry.LongestRow(geo, len(rows)); err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}
	}
	klog.V(2).Infof("%s: start row %d, max connections %d", method, start, o.MaxConnections)

	p := &propagator{g: g, opts: o, dist: dist}
	if err = p.forceContinuous(rows); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	left := slices.Clone(rows[:start+1])
	slices.Reverse(left)
	right := rows[start:]

	if err = p.firstPass(left); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if err = p.firstPass(right); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if err = p.secondPass(left); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if err = p.secondPass(right); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	return nil
}

// forceContinuous chains rows[r][1] (and/or rows[r][len-2]) between adjacent
// rows. Rows with fewer than three nodes have no such interior node.
func (p *propagator) forceContinuous(rows [][]core.Node) error {
	pick := func(row []core.Node, fromEnd bool) (core.Node, bool) {
		if len(row) < 3 {
			return core.Node{}, false
		}
		if fromEnd {
			return row[len(row)-2], true
		}

		return row[1], true
	}

	for _, fromEnd := range []bool{false, true} {
		if (!fromEnd && !p.opts.ForceContinuousStart) || (fromEnd && !p.opts.ForceContinuousEnd) {
			continue
		}
		for r := 0; r+1 < len(rows); r++ {
			a, okA := pick(rows[r], fromEnd)
			b, okB := pick(rows[r+1], fromEnd)
			if !okA || !okB {
				continue
			}
			if err := p.g.AddWeftEdge(a.ID, b.ID, nil); err != nil {
				return err
			}
		}
	}

	return nil
}

// interior returns the nodes of row that the first pass may connect:
// no leaves, and none of the force-continuous chain nodes.
func (p *propagator) interior(row []core.Node) []core.Node {
	if len(row) < 3 {
		return nil
	}
	out := row[1 : len(row)-1]
	if p.opts.ForceContinuousStart && len(out) > 0 {
		out = out[1:]
	}
	if p.opts.ForceContinuousEnd && len(out) > 0 {
		out = out[:len(out)-1]
	}

	return out
}

// firstPass walks set[i] → set[i+1] for consecutive rows of the set.
func (p *propagator) firstPass(set [][]core.Node) error {
	for i := 0; i+1 < len(set); i++ {
		sources, targets := p.interior(set[i]), p.interior(set[i+1])
		if len(sources) == 0 || len(targets) == 0 {
			continue
		}
		inSource := make(map[core.NodeID]bool, len(sources))
		for _, n := range sources {
			inSource[n.ID] = true
		}

		forbidden := -1
		for _, n := range sources {
			targets = slices.DeleteFunc(slices.Clone(targets), func(t core.Node) bool { return t.Num < forbidden })
			if len(targets) == 0 {
				break
			}
			cand := p.nearest(n, targets)
			ok, err := p.attempt(n, cand, inSource)
			if err != nil {
				return err
			}
			if ok {
				forbidden = cand.Num
			}
		}
	}

	return nil
}

// attempt links n to cand unless cand is saturated or already linked to a
// source node.
func (p *propagator) attempt(n, cand core.Node, inSource map[core.NodeID]bool) (bool, error) {
	edges, err := p.g.EdgesIncidentTo(cand.ID, core.RoleWeft)
	if err != nil {
		return false, err
	}
	if len(edges) >= p.opts.MaxConnections {
		klog.V(3).Infof("candidate %d saturated (%d weft edges)", cand.ID, len(edges))
		return false, nil
	}
	for _, e := range edges {
		if other, _ := e.Key.Other(cand.ID); inSource[other] {
			klog.V(3).Infof("candidate %d already linked to row %d", cand.ID, n.Row)
			return false, nil
		}
	}

	return true, p.g.AddWeftEdge(n.ID, cand.ID, nil)
}

// secondPass fills the gaps the first pass left in every row of set.
func (p *propagator) secondPass(set [][]core.Node) error {
	for i, row := range set {
		var targets [][]core.Node
		if i > 0 {
			targets = append(targets, set[i-1])
		}
		if i+1 < len(set) {
			targets = append(targets, set[i+1])
		}

		for k := 1; k < len(row); k++ {
			linked, err := p.linkedRows(row[k].ID)
			if err != nil {
				return err
			}
			for _, target := range targets {
				if linked[target[0].Row] {
					continue
				}
				if err = p.fill(row, k, target); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// fill links row[k] into target inside the window its neighbours span.
// Without a previous-neighbour connection there is no window and nothing happens.
func (p *propagator) fill(row []core.Node, k int, target []core.Node) error {
	targetRow := target[0].Row

	peers, err := p.weftPeers(row[k-1].ID)
	if err != nil {
		return err
	}
	start := -1
	for _, peer := range peers {
		if peer.Row == targetRow && peer.Num > start {
			start = peer.Num
		}
	}
	if start < 0 {
		return nil
	}

	end := start
	for _, next := range row[k+1:] {
		if peers, err = p.weftPeers(next.ID); err != nil {
			return err
		}
		found := -1
		for _, peer := range peers {
			if peer.Row == targetRow && peer.Num >= start && (found < 0 || peer.Num < found) {
				found = peer.Num
			}
		}
		if found >= 0 {
			end = found
			break
		}
	}

	window := slices.DeleteFunc(slices.Clone(target), func(t core.Node) bool { return t.Num < start || t.Num > end })
	if len(window) == 0 {
		return nil
	}
	if window, err = p.unsaturated(window); err != nil {
		return err
	}
	if len(window) == 0 {
		klog.Warningf("second pass: node %d has no unsaturated candidate in %d..%d on row %d",
			row[k].ID, start, end, targetRow)
		if p.opts.OnSaturated != nil {
			p.opts.OnSaturated(row[k], targetRow)
		}
		return nil
	}

	var pick core.Node
	if p.opts.LeastConnected {
		if pick, err = p.leastConnected(row[k], window); err != nil {
			return err
		}
	} else {
		pick = p.nearest(row[k], window)
	}
	klog.V(3).Infof("second pass: %d -> %d (window %d..%d on row %d)", row[k].ID, pick.ID, start, end, targetRow)

	return p.g.AddWeftEdge(row[k].ID, pick.ID, nil)
}

// unsaturated keeps the candidates whose weft degree is below MaxConnections.
func (p *propagator) unsaturated(cands []core.Node) ([]core.Node, error) {
	out := cands[:0]
	for _, c := range cands {
		edges, err := p.g.EdgesIncidentTo(c.ID, core.RoleWeft)
		if err != nil {
			return nil, err
		}
		if len(edges) < p.opts.MaxConnections {
			out = append(out, c)
		}
	}

	return out, nil
}

// nearest returns the candidate closest to n; ties keep the lower num.
// cands must be non-empty and in num order.
func (p *propagator) nearest(n core.Node, cands []core.Node) core.Node {
	best, bestD := cands[0], p.dist(n.Point, cands[0].Point)
	for _, c := range cands[1:] {
		if d := p.dist(n.Point, c.Point); d < bestD {
			best, bestD = c, d
		}
	}

	return best
}

// leastConnected ranks by distance, then by total degree, then by num.
func (p *propagator) leastConnected(n core.Node, cands []core.Node) (core.Node, error) {
	type ranked struct {
		node core.Node
		d    float64
		deg  int
	}
	rs := make([]ranked, len(cands))
	for i, c := range cands {
		deg, err := p.g.Degree(c.ID)
		if err != nil {
			return core.Node{}, err
		}
		rs[i] = ranked{node: c, d: p.dist(n.Point, c.Point), deg: deg}
	}
	best := slices.MinFunc(rs, func(a, b ranked) int {
		switch {
		case a.d != b.d:
			if a.d < b.d {
				return -1
			}
			return 1
		case a.deg != b.deg:
			return a.deg - b.deg
		default:
			return a.node.Num - b.node.Num
		}
	})

	return best.node, nil
}

// weftPeers returns the far endpoints of id's weft edges.
func (p *propagator) weftPeers(id core.NodeID) ([]core.Node, error) {
	edges, err := p.g.EdgesIncidentTo(id, core.RoleWeft)
	if err != nil {
		return nil, err
	}
	out := make([]core.Node, 0, len(edges))
	for _, e := range edges {
		other, _ := e.Key.Other(id)
		n, err := p.g.Node(other)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	return out, nil
}

// linkedRows reports which rows id already reaches through weft edges.
func (p *propagator) linkedRows(id core.NodeID) (map[int]bool, error) {
	peers, err := p.weftPeers(id)
	if err != nil {
		return nil, err
	}
	out := make(map[int]bool, len(peers))
	for _, peer := range peers {
		out[peer.Row] = true
	}

	return out, nil
}
