// SPDX-License-Identifier: MIT
// Package: knitnet/builder
//
// impl_courses.go - implementation of the Courses(c) constructor.
//
// Contract:
//   • c passes geometry validation (course height falls back to cfg when unset).
//   • One node per point. Ids continue from g.Order() in row-major order,
//     rows continue after the rows already present in g.
//   • num = index within row; leaf = first or last point of its row.
//   • Contour edges link consecutive points of each row, emitted in order.
//   • Nodes on rows named by WithStartRows carry the start flag.
//
// Complexity:
//   • Time: O(P log P) for P points (ordered index inserts).
//
// Determinism:
//   • Stable id assignment and edge emission order.
package builder

import (
	"fmt"

	"github.com/katalvlaran/knitnet/core"
	"github.com/katalvlaran/knitnet/geometry"
)

// Courses returns a Constructor that turns sampled rows into Knit Graph nodes
// and contour edges.
func Courses(c geometry.Courses) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		in := c
		if in.CourseHeight <= 0 {
			in.CourseHeight = cfg.courseHeight
		}
		if err := in.Validate(); err != nil {
			return fmt.Errorf("%s: %w", MethodCourses, err)
		}

		nextID := core.NodeID(g.Order())
		firstRow := len(g.Rows())

		for i, row := range in.Rows {
			r := firstRow + i
			last := row.Len() - 1
			var opts []core.NodeOption
			if cfg.isStartRow(r) {
				opts = append(opts, core.WithStart())
			}
			for num, p := range row.Points {
				leaf := num == 0 || num == last
				if err := g.AddNode(nextID, p, r, num, leaf, false, opts...); err != nil {
					return fmt.Errorf("%s: %w", MethodCourses, err)
				}
				if num > 0 {
					if err := g.AddContourEdge(nextID-1, nextID); err != nil {
						return fmt.Errorf("%s: %w", MethodCourses, err)
					}
				}
				nextID++
			}
		}

		return nil
	}
}
