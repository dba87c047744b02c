// SPDX-License-Identifier: MIT
//
// File: index.go
// Role: (row, num) ordered index over node ids.

package core

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// position is the ordering key of the index.
type position struct {
	row int
	num int
}

func positionComparator(a, b interface{}) int {
	pa, pb := a.(position), b.(position)
	if c := utils.IntComparator(pa.row, pb.row); c != 0 {
		return c
	}

	return utils.IntComparator(pa.num, pb.num)
}

func newPositionIndex() *redblacktree.Tree {
	return redblacktree.NewWith(positionComparator)
}

// eachInOrder calls fn for every node in (row, num) order until fn returns false.
// Caller holds g.mu.
func (g *Graph) eachInOrder(fn func(n *Node) bool) {
	it := g.byPos.Iterator()
	for it.Next() {
		if !fn(g.nodes[it.Value().(NodeID)]) {
			return
		}
	}
}

// eachOnRow calls fn for the nodes of one row in num order.
// Caller holds g.mu.
func (g *Graph) eachOnRow(row int, fn func(n *Node)) {
	g.eachInOrder(func(n *Node) bool {
		if n.Row < row {
			return true
		}
		if n.Row > row {
			return false
		}
		fn(n)

		return true
	})
}
