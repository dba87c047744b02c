// SPDX-License-Identifier: MIT
//
// File: chains.go
// Role: source/target chain collection over the warp edges of a mapping network.

package mapping

import (
	"context"
	"fmt"
	"slices"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/knitnet/core"
)

// ChainKey identifies a chain by its first segment's start node, its last
// segment's end node, and the number of chains with the same two nodes
// collected before it on the same warp edge.
type ChainKey struct {
	Start core.NodeID
	End   core.NodeID
	Index int
}

// String renders "start-end#index".
func (k ChainKey) String() string {
	return fmt.Sprintf("%d-%d#%d", k.Start, k.End, k.Index)
}

// Chain is one traced run of segments.
type Chain struct {
	Key      ChainKey
	Segments []core.SegmentID
	// Dangling marks a walk that ran out of continuations before meeting a warp edge.
	Dangling bool
}

// Chains holds the deduplicated source and target chains in discovery order.
type Chains struct {
	Source []Chain
	Target []Chain
}

// SourceMap returns the source chains keyed for direct lookup.
func (c *Chains) SourceMap() map[ChainKey][]core.SegmentID { return toMap(c.Source) }

// TargetMap returns the target chains keyed for direct lookup.
func (c *Chains) TargetMap() map[ChainKey][]core.SegmentID { return toMap(c.Target) }

// Dangling lists the source chains and then the target chains that stopped
// without a warp edge.
func (c *Chains) Dangling() []Chain {
	var out []Chain
	for _, ch := range slices.Concat(c.Source, c.Target) {
		if ch.Dangling {
			out = append(out, ch)
		}
	}

	return out
}

func toMap(chains []Chain) map[ChainKey][]core.SegmentID {
	out := make(map[ChainKey][]core.SegmentID, len(chains))
	for _, ch := range chains {
		out[ch.Key] = slices.Clone(ch.Segments)
	}

	return out
}

// Option configures BuildChains.
type Option func(*chainOptions)

type chainOptions struct {
	ctx context.Context
}

// WithContext makes BuildChains check ctx between warp edges.
// A nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *chainOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// pass collects the chains found on one warp edge.
type pass struct {
	source, target []Chain
}

// add appends a chain to list, numbering it among the list's chains that
// share the same start and end node.
func (p *pass) add(list *[]Chain, segs []core.SegmentID, terminated bool) {
	key := ChainKey{Start: segs[0].Start, End: segs[len(segs)-1].End}
	for _, ch := range *list {
		if ch.Key.Start == key.Start && ch.Key.End == key.End {
			key.Index++
		}
	}
	*list = append(*list, Chain{Key: key, Segments: segs, Dangling: !terminated})
}

// BuildChains traces source and target chains from both endpoints of every
// warp edge of the mapping network mg, in (u, v) order with u < v.
//
// At u every segment starting there is traced upward into a source chain;
// when u is a leaf it is also traced downward into a target chain. At v
// every segment starting there is traced downward into a target chain, and
// upward into a source chain when v is a leaf. A chain is kept only if its
// key was not seen before (first seen wins).
//
// A network without warp edges yields empty, non-nil results.
//
// Errors: context errors when WithContext is set; core lookup errors.
// Complexity: O(W · S · Δ) for W warp edges and S segments.
func BuildChains(mg *core.Graph, opts ...Option) (*Chains, error) {
	o := chainOptions{ctx: context.Background()}
	for _, fn := range opts {
		fn(&o)
	}

	warps := mg.WarpEdges()
	keys := make([]core.EdgeKey, len(warps))
	for i, w := range warps {
		keys[i] = w.Key
	}
	slices.SortFunc(keys, func(a, b core.EdgeKey) int {
		if a.U != b.U {
			return int(a.U) - int(b.U)
		}
		return int(a.V) - int(b.V)
	})

	out := &Chains{Source: []Chain{}, Target: []Chain{}}
	seenSource := make(map[ChainKey]bool)
	seenTarget := make(map[ChainKey]bool)

	for _, k := range keys {
		if err := o.ctx.Err(); err != nil {
			return nil, fmt.Errorf("BuildChains: %w", err)
		}

		var p pass
		if err := p.visit(mg, k.U, true); err != nil {
			return nil, fmt.Errorf("BuildChains: warp %s: %w", k, err)
		}
		if err := p.visit(mg, k.V, false); err != nil {
			return nil, fmt.Errorf("BuildChains: warp %s: %w", k, err)
		}

		for _, ch := range p.source {
			if !seenSource[ch.Key] {
				seenSource[ch.Key] = true
				out.Source = append(out.Source, ch)
			}
		}
		for _, ch := range p.target {
			if !seenTarget[ch.Key] {
				seenTarget[ch.Key] = true
				out.Target = append(out.Target, ch)
			}
		}
		klog.V(2).Infof("BuildChains: warp %s: %d source, %d target candidates", k, len(p.source), len(p.target))
	}

	return out, nil
}

// visit traces from every segment starting at id. lower selects the u side
// of the warp edge (source always, target if leaf); otherwise the v side
// (target always, source if leaf).
func (p *pass) visit(mg *core.Graph, id core.NodeID, lower bool) error {
	n, err := mg.Node(id)
	if err != nil {
		return err
	}
	segs, err := mg.SegmentsByStart(id)
	if err != nil {
		return err
	}

	for _, s := range segs {
		seed := []core.SegmentID{s}
		if lower || n.Leaf {
			chain, ok, err := trace(mg, seed, false, false)
			if err != nil {
				return err
			}
			p.add(&p.source, chain, ok)
		}
		if !lower || n.Leaf {
			chain, ok, err := trace(mg, seed, true, false)
			if err != nil {
				return err
			}
			p.add(&p.target, chain, ok)
		}
	}

	return nil
}
