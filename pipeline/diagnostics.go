// SPDX-License-Identifier: MIT
//
// File: diagnostics.go
// Role: soft-anomaly collection over a finished topology.

package pipeline

import (
	"context"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/knitnet/core"
	"github.com/katalvlaran/knitnet/dfs"
	"github.com/katalvlaran/knitnet/mapping"
	"github.com/katalvlaran/knitnet/topology"
)

// Anomaly kinds, as used for metric labels.
const (
	AnomalyUnassignedWeft = "unassigned_weft"
	AnomalyDanglingChain  = "dangling_chain"
	AnomalyIsolatedNode   = "isolated_node"
	AnomalyWeftLoop       = "weft_loop"
	AnomalySaturatedNode  = "saturated_node"
)

var anomalyKinds = []string{
	AnomalyUnassignedWeft, AnomalyDanglingChain, AnomalyIsolatedNode, AnomalyWeftLoop, AnomalySaturatedNode,
}

// Diagnostics collects the soft anomalies of one run.
type Diagnostics struct {
	// Unassigned lists weft edges left without a segment.
	Unassigned []core.EdgeKey
	// Dangling lists chains that stopped without reaching a warp edge.
	Dangling []mapping.Chain
	// WeftComponents counts the connected components of the weft network.
	WeftComponents int
	// Isolated lists nodes without any weft edge.
	Isolated []core.NodeID
	// WeftLoops lists closed weft cycles that pass no end node.
	WeftLoops [][]core.NodeID
	// Saturated lists nodes the second weft pass left unlinked toward a
	// neighbouring row because every candidate held MaxConnections weft edges.
	Saturated []core.NodeID
}

// Counts returns the number of anomalies per kind.
func (d Diagnostics) Counts() map[string]int {
	return map[string]int{
		AnomalyUnassignedWeft: len(d.Unassigned),
		AnomalyDanglingChain:  len(d.Dangling),
		AnomalyIsolatedNode:   len(d.Isolated),
		AnomalyWeftLoop:       len(d.WeftLoops),
		AnomalySaturatedNode:  len(d.Saturated),
	}
}

// Empty reports whether no anomaly was found.
func (d Diagnostics) Empty() bool {
	for _, n := range d.Counts() {
		if n > 0 {
			return false
		}
	}

	return true
}

// diagnose inspects g after segmentation and chain building. chains may be nil.
// saturated comes from the propagation stage.
func diagnose(
	ctx context.Context,
	g *core.Graph,
	rep *topology.SegmentReport,
	chains *mapping.Chains,
	saturated []core.NodeID,
) (Diagnostics, error) {
	d := Diagnostics{Saturated: saturated}
	if rep != nil {
		d.Unassigned = rep.Unassigned
	}
	if chains != nil {
		d.Dangling = chains.Dangling()
	}

	comps, err := dfs.Components(g, core.RoleWeft, dfs.WithContext(ctx))
	if err != nil {
		return d, err
	}
	d.WeftComponents = len(comps)
	for _, c := range comps {
		if len(c) == 1 {
			d.Isolated = append(d.Isolated, c[0])
		}
	}

	_, cycles, err := dfs.DetectCycles(g, core.RoleWeft)
	if err != nil {
		return d, err
	}
	for _, cyc := range cycles {
		open, err := withoutEnd(g, cyc)
		if err != nil {
			return d, err
		}
		if open {
			d.WeftLoops = append(d.WeftLoops, cyc)
		}
	}

	counts := d.Counts()
	for _, kind := range anomalyKinds {
		if n := counts[kind]; n > 0 {
			klog.Warningf("diagnostics: %d %s", n, kind)
		}
	}

	return d, nil
}

// withoutEnd reports whether no node of cycle is an end node.
func withoutEnd(g *core.Graph, cycle []core.NodeID) (bool, error) {
	for _, id := range cycle {
		n, err := g.Node(id)
		if err != nil {
			return false, err
		}
		if n.End {
			return false, nil
		}
	}

	return true, nil
}
