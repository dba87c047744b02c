// SPDX-License-Identifier: MIT
// Package core_test verifies core.Graph method-level contracts.
//
// Purpose:
//   - Lock in the (row, num) ordering of node views and insertion order of edge views.
//   - Validate sentinel errors for duplicate ids, unknown endpoints and bad traversals.
//   - Check last-write-wins overwrites and parallel segment slots.

package core_test

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knitnet/core"
)

// grid builds rows x cols nodes with row-major ids, leaves at both row ends,
// and contour edges along each row.
func grid(t *testing.T, rows, cols int) *core.Graph {
	t.Helper()
	g := core.NewGraph(core.WithName("grid"))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id := core.NodeID(r*cols + c)
			leaf := c == 0 || c == cols-1
			require.NoError(t, g.AddNode(id, v3.Vec{X: float64(c), Y: float64(r)}, r, c, leaf, false))
			if c > 0 {
				require.NoError(t, g.AddContourEdge(id-1, id))
			}
		}
	}

	return g
}

func TestAddNode_Errors(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode(1, v3.Vec{}, 0, 0, true, false))

	err := g.AddNode(1, v3.Vec{}, 0, 1, false, false)
	assert.ErrorIs(t, err, core.ErrDuplicateNode)

	err = g.AddNode(2, v3.Vec{}, 0, 0, false, false)
	assert.ErrorIs(t, err, core.ErrDuplicateNode, "same (row, num) under another id")

	err = g.AddNode(3, v3.Vec{}, -1, 0, false, false)
	assert.ErrorIs(t, err, core.ErrInvalidPosition)

	assert.Equal(t, 1, g.Order())
}

func TestAddNode_Options(t *testing.T) {
	g := core.NewGraph()
	seg := core.NewSegmentID(9, 4, 2)
	require.NoError(t, g.AddNode(5, v3.Vec{X: 1}, 2, 3, false, true, core.WithSegment(seg), core.WithStart()))

	n, err := g.Node(5)
	require.NoError(t, err)
	assert.True(t, n.Start)
	assert.True(t, n.End)
	require.True(t, n.HasSegment())
	assert.Equal(t, core.SegmentID{Start: 4, End: 9, Index: 2}, *n.Segment)

	// the returned copy must not alias graph state
	n.Segment.Index = 7
	again, _ := g.Node(5)
	assert.Equal(t, 2, again.Segment.Index)

	_, err = g.Node(42)
	assert.ErrorIs(t, err, core.ErrUnknownNode)
}

func TestNodeViews_Ordering(t *testing.T) {
	g := core.NewGraph()
	// insert out of order on purpose
	require.NoError(t, g.AddNode(10, v3.Vec{}, 1, 2, true, false))
	require.NoError(t, g.AddNode(11, v3.Vec{}, 0, 1, true, true))
	require.NoError(t, g.AddNode(12, v3.Vec{}, 1, 0, true, true))
	require.NoError(t, g.AddNode(13, v3.Vec{}, 0, 0, true, false))
	require.NoError(t, g.AddNode(14, v3.Vec{}, 1, 1, false, false))

	ids := func(ns []core.Node) []core.NodeID {
		out := make([]core.NodeID, len(ns))
		for i, n := range ns {
			out[i] = n.ID
		}
		return out
	}

	assert.Equal(t, []core.NodeID{13, 11, 12, 14, 10}, ids(g.Nodes()))
	assert.Equal(t, []core.NodeID{12, 14, 10}, ids(g.NodesOnRow(1)))
	assert.Equal(t, []core.NodeID{12, 10}, ids(g.LeavesOnRow(1)))
	assert.Equal(t, []core.NodeID{11}, ids(g.EndsOnRow(0)))
	assert.Empty(t, g.NodesOnRow(7))
	assert.Equal(t, []int{0, 1}, g.Rows())

	byRow := g.AllEndsByRow()
	require.Len(t, byRow, 2)
	assert.Equal(t, []core.NodeID{11}, ids(byRow[0]))
	assert.Equal(t, []core.NodeID{12}, ids(byRow[1]))

	n, err := g.NodeAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, core.NodeID(14), n.ID)
}

func TestEdges_OverwriteKeepsInsertionOrder(t *testing.T) {
	g := grid(t, 1, 4) // contour 0-1, 1-2, 2-3

	require.NoError(t, g.AddWeftEdge(1, 0, nil))
	assert.Len(t, g.ContourEdges(), 2)

	weft := g.WeftEdges()
	require.Len(t, weft, 1)
	assert.Equal(t, core.Key(0, 1), weft[0].Key)
	assert.Equal(t, uint64(1), weft[0].Seq, "overwrite keeps the first sequence number")

	require.NoError(t, g.AddWarpEdge(3, 2))
	require.NoError(t, g.AddWarpEdge(1, 2))
	warp := g.WarpEdges()
	require.Len(t, warp, 2)
	assert.Equal(t, core.Key(1, 2), warp[0].Key)
	assert.Equal(t, core.Key(2, 3), warp[1].Key)
	assert.Equal(t, 3, g.Size())
}

func TestEdges_Errors(t *testing.T) {
	g := grid(t, 1, 2)

	assert.ErrorIs(t, g.AddWeftEdge(0, 9, nil), core.ErrUnknownNode)
	assert.ErrorIs(t, g.AddWarpEdge(1, 1), core.ErrLoopNotAllowed)
	assert.ErrorIs(t, g.RemoveEdge(core.Key(5, 6)), core.ErrEdgeNotFound)

	_, err := g.Edge(core.Key(0, 5))
	assert.ErrorIs(t, err, core.ErrEdgeNotFound)

	_, err = g.EdgesIncidentTo(99, core.RoleWeft)
	assert.ErrorIs(t, err, core.ErrUnknownNode)

	err = g.AddSegmentEdge(0, 1, core.NewSegmentID(0, 2, 0))
	assert.ErrorIs(t, err, core.ErrSegmentMismatch)

	assert.ErrorIs(t, g.SetEdgeSegment(core.Key(0, 1), nil), core.ErrSegmentMismatch, "contour edges carry no segment")
	assert.ErrorIs(t, g.SetEdgeRole(core.Key(0, 1), core.RoleSegment), core.ErrSegmentMismatch)
}

func TestSegmentEdges_Parallel(t *testing.T) {
	g := grid(t, 2, 2) // ids 0,1 / 2,3

	s1 := core.NewSegmentID(0, 2, 1)
	s0 := core.NewSegmentID(2, 0, 0)
	other := core.NewSegmentID(2, 3, 0)
	require.NoError(t, g.AddSegmentEdge(0, 2, s1))
	require.NoError(t, g.AddSegmentEdge(2, 3, other))
	require.NoError(t, g.AddSegmentEdge(2, 0, s0))
	require.NoError(t, g.AddWarpEdge(0, 2))

	segs := g.SegmentEdges()
	require.Len(t, segs, 3)
	assert.Equal(t, s0, *segs[0].Segment)
	assert.Equal(t, s1, *segs[1].Segment)
	assert.Equal(t, other, *segs[2].Segment)

	byStart, err := g.SegmentsByStart(0)
	require.NoError(t, err)
	assert.Equal(t, []core.SegmentID{s0, s1}, byStart)

	byEnd, err := g.SegmentsByEnd(2)
	require.NoError(t, err)
	assert.Equal(t, []core.SegmentID{s0, s1}, byEnd)

	byStart, err = g.SegmentsByStart(2)
	require.NoError(t, err)
	assert.Equal(t, []core.SegmentID{other}, byStart)

	deg, err := g.Degree(2)
	require.NoError(t, err)
	assert.Equal(t, 5, deg, "contour and segment to 3, two parallel segments and a warp to 0")

	nbrs, err := g.Neighbors(2)
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{0, 3}, nbrs)
	assert.True(t, g.HasSegment(s1))
}

func TestTraverseEdge(t *testing.T) {
	g := grid(t, 1, 3)
	k := core.Key(2, 1)

	other, err := g.TraverseEdge(1, k)
	require.NoError(t, err)
	assert.Equal(t, core.NodeID(2), other)

	_, err = g.TraverseEdge(0, k)
	assert.ErrorIs(t, err, core.ErrInvalidTraversal)

	_, err = g.TraverseEdge(0, core.Key(0, 2))
	assert.ErrorIs(t, err, core.ErrEdgeNotFound)
}

func TestEdgesIncidentTo_Role(t *testing.T) {
	g := grid(t, 2, 3)
	require.NoError(t, g.AddWeftEdge(0, 3, nil))
	require.NoError(t, g.AddWarpEdge(0, 1))

	weft, err := g.EdgesIncidentTo(0, core.RoleWeft)
	require.NoError(t, err)
	require.Len(t, weft, 1)
	assert.Equal(t, core.Key(0, 3), weft[0].Key)

	warp, err := g.EdgesIncidentTo(0, core.RoleWarp)
	require.NoError(t, err)
	require.Len(t, warp, 1)

	contour, err := g.EdgesIncidentTo(0, core.RoleContour)
	require.NoError(t, err)
	assert.Empty(t, contour, "the only contour edge of node 0 was rewritten as warp")
}

func TestCloneAndFilter(t *testing.T) {
	g := grid(t, 2, 3)
	seg := core.NewSegmentID(0, 3, 0)
	require.NoError(t, g.AddWeftEdge(0, 3, &seg))

	c := g.Clone()
	assert.Equal(t, g.String(), c.String())
	assert.Equal(t, g.WeftEdges(), c.WeftEdges())

	// mutating the clone leaves the source untouched
	require.NoError(t, c.SetEnd(0, true))
	require.NoError(t, c.RemoveEdge(core.Key(0, 3)))
	n, _ := g.Node(0)
	assert.False(t, n.End)
	assert.Len(t, g.WeftEdges(), 1)

	onlyRow0 := g.Filter(func(n core.Node) bool { return n.Row == 0 }, nil)
	assert.Equal(t, 3, onlyRow0.Order())
	assert.Empty(t, onlyRow0.WeftEdges(), "edge to a dropped node is dropped")
	assert.Len(t, onlyRow0.ContourEdges(), 2)

	empty := g.CloneEmpty()
	assert.Equal(t, g.Order(), empty.Order())
	assert.Zero(t, empty.Size())
}

func TestStatsAndString(t *testing.T) {
	g := grid(t, 2, 3)
	require.NoError(t, g.AddWeftEdge(0, 3, nil))
	require.NoError(t, g.AddWarpEdge(4, 5))
	require.NoError(t, g.SetEnd(4, true))

	s := g.Stats()
	assert.Equal(t, core.GraphStats{Nodes: 6, Leaves: 4, Ends: 1, Contours: 3, Weft: 1, Warp: 1}, s)
	assert.Equal(t, "grid (6 Nodes, 3 Contours, 1 Weft, 1 Warp, 0 Segments)", g.String())
}

func TestSegmentID_Order(t *testing.T) {
	a := core.NewSegmentID(5, 2, 0)
	assert.Equal(t, core.NodeID(2), a.Start)
	assert.Equal(t, "(2,5,0)", a.String())

	b := core.NewSegmentID(2, 5, 1)
	c := core.NewSegmentID(2, 6, 0)
	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 1, c.Compare(a))
	assert.Equal(t, "2-5#1", core.SegmentKey(b).String())
}
