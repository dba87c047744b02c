package mapping_test

import (
	"context"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knitnet/builder"
	"github.com/katalvlaran/knitnet/core"
	"github.com/katalvlaran/knitnet/mapping"
	"github.com/katalvlaran/knitnet/topology"
)

func seg(s, e core.NodeID, i int) core.SegmentID { return core.SegmentID{Start: s, End: e, Index: i} }

// network builds a mapping graph from {id, row, num, leaf} nodes, segment
// ids and warp pairs. Every node is an end node.
func network(t *testing.T, nodes [][4]int, segs []core.SegmentID, warps [][2]core.NodeID) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, n := range nodes {
		p := v3.Vec{X: float64(n[2]), Y: float64(n[1])}
		require.NoError(t, g.AddNode(core.NodeID(n[0]), p, n[1], n[2], n[3] == 1, true))
	}
	for _, s := range segs {
		require.NoError(t, g.AddSegmentEdge(s.Start, s.End, s))
	}
	for _, w := range warps {
		require.NoError(t, g.AddWarpEdge(w[0], w[1]))
	}

	return g
}

// knitted runs the topology stages on a lattice and returns the knit graph.
func knitted(t *testing.T, rows, cols int) *core.Graph {
	t.Helper()
	c, err := builder.LatticeCourses(rows, cols)
	require.NoError(t, err)
	g, geo, err := builder.FromCourses(c)
	require.NoError(t, err)
	require.NoError(t, topology.SeedLeafConnections(g))
	require.NoError(t, topology.PropagateWeftEdges(g, geo))
	require.NoError(t, topology.SeedWarpEdges(g, nil))
	_, err = topology.AssignSegments(g)
	require.NoError(t, err)

	return g
}

// TestBuildChains_ThreeRowExample covers three rows of four stitches with
// leaves at num 0 and 3 and one warp edge between (1,0) and (0,0). Only the
// num-0 end nodes take part: 0 = (0,0), 4 = (1,0), 8 = (2,0).
func TestBuildChains_ThreeRowExample(t *testing.T) {
	mg := network(t,
		[][4]int{{0, 0, 0, 1}, {4, 1, 0, 1}, {8, 2, 0, 1}},
		[]core.SegmentID{seg(0, 4, 0), seg(4, 8, 0)},
		[][2]core.NodeID{{4, 0}},
	)

	chains, err := mapping.BuildChains(mg)
	require.NoError(t, err)

	var fromLeaf []mapping.Chain
	for _, ch := range chains.Source {
		if ch.Key.Start == 4 {
			fromLeaf = append(fromLeaf, ch)
		}
	}
	require.Len(t, fromLeaf, 1)
	assert.Equal(t, []core.SegmentID{seg(4, 8, 0)}, fromLeaf[0].Segments, "rows 1 to 2")
	assert.Equal(t, 0, fromLeaf[0].Key.Index)

	targets := chains.TargetMap()
	assert.Equal(t, []core.SegmentID{seg(0, 4, 0)}, targets[mapping.ChainKey{Start: 0, End: 4}], "rows 0 to 1")
	assert.Contains(t, targets, mapping.ChainKey{Start: 4, End: 8})

	// nothing continues above row 2
	require.Len(t, chains.Dangling(), 2)
	assert.Equal(t, mapping.ChainKey{Start: 4, End: 8}, chains.Dangling()[0].Key)
}

func TestBuildChains_NoWarpEdges(t *testing.T) {
	mg := network(t, [][4]int{{0, 0, 0, 1}, {1, 1, 0, 1}}, []core.SegmentID{seg(0, 1, 0)}, nil)

	chains, err := mapping.BuildChains(mg)
	require.NoError(t, err)
	assert.NotNil(t, chains.Source)
	assert.NotNil(t, chains.Target)
	assert.Empty(t, chains.Source)
	assert.Empty(t, chains.Target)
	assert.Empty(t, chains.SourceMap())
}

func TestBuildChains_Cancelled(t *testing.T) {
	mg := network(t,
		[][4]int{{0, 0, 0, 1}, {4, 1, 0, 1}},
		[]core.SegmentID{seg(0, 4, 0)},
		[][2]core.NodeID{{0, 4}},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mapping.BuildChains(mg, mapping.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildChains_ParallelIndex(t *testing.T) {
	// two parallel segments between the same leaf end nodes
	mg := network(t,
		[][4]int{{0, 0, 0, 1}, {1, 0, 1, 1}, {2, 1, 0, 1}},
		[]core.SegmentID{seg(0, 2, 0), seg(0, 2, 1)},
		[][2]core.NodeID{{0, 1}},
	)

	chains, err := mapping.BuildChains(mg)
	require.NoError(t, err)
	var keys []mapping.ChainKey
	for _, ch := range chains.Source {
		keys = append(keys, ch.Key)
	}
	assert.Equal(t, []mapping.ChainKey{{Start: 0, End: 2, Index: 0}, {Start: 0, End: 2, Index: 1}}, keys)
	assert.Equal(t, "0-2#1", keys[1].String())
}

func TestTraceSegmentsUntilWarp_EmptySeed(t *testing.T) {
	_, err := mapping.TraceSegmentsUntilWarp(core.NewGraph(), nil, false, false)
	assert.ErrorIs(t, err, mapping.ErrEmptyChain)
}

// column is a vertical run of segments 0-1-2-3 with a warp edge from 3 to
// the row above and one from 1 to the row below.
func column(t *testing.T) *core.Graph {
	return network(t,
		[][4]int{{0, 0, 0, 0}, {1, 1, 0, 0}, {2, 2, 0, 0}, {3, 3, 0, 0}, {4, 4, 0, 0}, {5, 0, 1, 0}},
		[]core.SegmentID{seg(0, 1, 0), seg(1, 2, 0), seg(2, 3, 0)},
		[][2]core.NodeID{{3, 4}, {1, 5}},
	)
}

func TestTraceSegmentsUntilWarp_Up(t *testing.T) {
	chain, err := mapping.TraceSegmentsUntilWarp(column(t), []core.SegmentID{seg(0, 1, 0)}, false, false)
	require.NoError(t, err)
	assert.Equal(t, []core.SegmentID{seg(0, 1, 0), seg(1, 2, 0), seg(2, 3, 0)}, chain)
}

func TestTraceSegmentsUntilWarp_ByEndDown(t *testing.T) {
	chain, err := mapping.TraceSegmentsUntilWarp(column(t), []core.SegmentID{seg(2, 3, 0)}, true, true)
	require.NoError(t, err)
	// 2 has no warp edge; 1 reaches row 0, so the walk stops there
	assert.Equal(t, []core.SegmentID{seg(1, 2, 0), seg(2, 3, 0)}, chain)
}

func TestTraceSegmentsUntilWarp_Dangling(t *testing.T) {
	chain, err := mapping.TraceSegmentsUntilWarp(column(t), []core.SegmentID{seg(1, 2, 0)}, true, false)
	require.NoError(t, err)
	// no downward warp edge is ever met going up the column
	assert.Equal(t, []core.SegmentID{seg(1, 2, 0), seg(2, 3, 0)}, chain)
}

func TestTraceSegmentsUntilWarp_LowestContinuation(t *testing.T) {
	mg := network(t,
		[][4]int{{0, 0, 0, 0}, {1, 1, 0, 0}, {2, 2, 0, 0}, {3, 2, 1, 0}},
		[]core.SegmentID{seg(0, 1, 0), seg(1, 3, 0), seg(1, 2, 0), seg(1, 2, 1)},
		nil,
	)
	chain, err := mapping.TraceSegmentsUntilWarp(mg, []core.SegmentID{seg(0, 1, 0)}, false, false)
	require.NoError(t, err)
	assert.Equal(t, []core.SegmentID{seg(0, 1, 0), seg(1, 2, 0)}, chain)
}

func TestTraceSegmentsUntilWarp_WithinRowWarp(t *testing.T) {
	// warp edges seeded along a row compare nums: 2 → 3 is one step up
	mg := network(t,
		[][4]int{{0, 0, 0, 0}, {2, 1, 0, 0}, {3, 1, 1, 0}},
		[]core.SegmentID{seg(0, 2, 0)},
		[][2]core.NodeID{{2, 3}},
	)
	chain, err := mapping.TraceSegmentsUntilWarp(mg, []core.SegmentID{seg(0, 2, 0)}, false, false)
	require.NoError(t, err)
	assert.Equal(t, []core.SegmentID{seg(0, 2, 0)}, chain)
}

func TestBuild(t *testing.T) {
	g := knitted(t, 3, 4)

	mg, err := mapping.Build(g)
	require.NoError(t, err)
	assert.Equal(t, core.GraphStats{Nodes: 8, Leaves: 4, Ends: 8, Warp: 6, Segments: 4}, mg.Stats())

	segs, err := mg.SegmentsByStart(1)
	require.NoError(t, err)
	assert.Equal(t, []core.SegmentID{seg(1, 9, 0)}, segs)
	assert.Equal(t, 12, g.Order(), "knit graph untouched")
}

func TestBuild_NoSegments(t *testing.T) {
	c, err := builder.LatticeCourses(2, 3)
	require.NoError(t, err)
	g, _, err := builder.FromCourses(c)
	require.NoError(t, err)

	_, err = mapping.Build(g)
	assert.ErrorIs(t, err, mapping.ErrNoSegments)
}

func TestNodesBySegment(t *testing.T) {
	groups := mapping.NodesBySegment(knitted(t, 4, 3))

	require.Len(t, groups, 3)
	assert.Equal(t, seg(0, 9, 0), groups[0].Segment)
	var ids []core.NodeID
	for _, n := range groups[0].Nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []core.NodeID{3, 6}, ids)
}
