package mapping_test

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/knitnet/core"
	"github.com/katalvlaran/knitnet/mapping"
)

// ExampleBuildChains traces the chains of three leaf end nodes stacked in
// one column, with a warp edge between the two lower ones.
//
//	8
//	|  (4,8,0)
//	4
//	|  (0,4,0) + warp
//	0
func ExampleBuildChains() {
	mg := core.NewGraph()
	for row, id := range []core.NodeID{0, 4, 8} {
		_ = mg.AddNode(id, v3.Vec{Y: float64(row)}, row, 0, true, true)
	}
	_ = mg.AddSegmentEdge(0, 4, core.SegmentID{Start: 0, End: 4})
	_ = mg.AddSegmentEdge(4, 8, core.SegmentID{Start: 4, End: 8})
	_ = mg.AddWarpEdge(4, 0)

	chains, err := mapping.BuildChains(mg)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, ch := range chains.Source {
		fmt.Println("source", ch.Key, ch.Segments, ch.Dangling)
	}
	for _, ch := range chains.Target {
		fmt.Println("target", ch.Key, ch.Segments, ch.Dangling)
	}

	// Output:
	// source 0-4#0 [(0,4,0)] false
	// source 4-8#0 [(4,8,0)] true
	// target 0-4#0 [(0,4,0)] false
	// target 4-8#0 [(4,8,0)] true
}
