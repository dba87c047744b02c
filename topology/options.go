// SPDX-License-Identifier: MIT
//
// File: options.go
// Role: functional options for PropagateWeftEdges.

package topology

import (
	"fmt"

	"github.com/katalvlaran/knitnet/core"
	"github.com/katalvlaran/knitnet/geometry"
)

// DefaultMaxConnections bounds the weft fan-out of one node.
const DefaultMaxConnections = 4

// Options holds the resolved configuration of a propagation run.
//   - StartRow: row the passes walk outward from; -1 selects the longest row.
//   - MaxConnections: a candidate accepts a new weft edge only below this weft degree.
//   - Precise: rank by exact distance instead of squared distance.
//   - Distance: overrides the adapter-derived ranking when non-nil.
//   - ForceContinuousStart / ForceContinuousEnd: chain the second / second-to-last
//     node of every row before the passes run.
//   - LeastConnected: second-pass ties prefer the candidate with fewer edges.
//   - OnSaturated: called for a second-pass node whose whole window is saturated.
type Options struct {
	StartRow             int
	MaxConnections       int
	Precise              bool
	Distance             geometry.DistanceFunc
	ForceContinuousStart bool
	ForceContinuousEnd   bool
	LeastConnected       bool
	OnSaturated          func(n core.Node, targetRow int)
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the zero-configuration defaults.
func DefaultOptions() Options {
	return Options{
		StartRow:       -1,
		MaxConnections: DefaultMaxConnections,
	}
}

// WithStartRow fixes the start row. Panics on a negative row; a row beyond
// the graph is reported by PropagateWeftEdges as ErrStartRow.
func WithStartRow(row int) Option {
	if row < 0 {
		panic(fmt.Sprintf("topology: WithStartRow(%d): row must be >= 0", row))
	}

	return func(o *Options) { o.StartRow = row }
}

// WithMaxConnections sets the weft fan-out bound. Panics if n < 1.
func WithMaxConnections(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("topology: WithMaxConnections(%d): must be >= 1", n))
	}

	return func(o *Options) { o.MaxConnections = n }
}

// WithPrecise selects exact (true) or squared (false) distance ranking.
func WithPrecise(precise bool) Option {
	return func(o *Options) { o.Precise = precise }
}

// WithDistanceFunc installs a caller-supplied ranking function.
func WithDistanceFunc(fn geometry.DistanceFunc) Option {
	return func(o *Options) { o.Distance = fn }
}

// WithForceContinuousStart chains the second node of every row with weft edges.
func WithForceContinuousStart() Option {
	return func(o *Options) { o.ForceContinuousStart = true }
}

// WithForceContinuousEnd chains the second-to-last node of every row with weft edges.
func WithForceContinuousEnd() Option {
	return func(o *Options) { o.ForceContinuousEnd = true }
}

// WithLeastConnected makes the second pass prefer less connected candidates
// among equidistant ones.
func WithLeastConnected() Option {
	return func(o *Options) { o.LeastConnected = true }
}

// WithOnSaturated installs fn, called when the second pass leaves n without
// a weft edge toward targetRow because every candidate already holds
// MaxConnections weft edges.
func WithOnSaturated(fn func(n core.Node, targetRow int)) Option {
	return func(o *Options) { o.OnSaturated = fn }
}
