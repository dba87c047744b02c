// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only getters and the textual summary of a graph.
// Policy:
//   - No algorithms or hidden state here.

package core

import "fmt"

// GraphStats is a point-in-time count of nodes and edges by role.
type GraphStats struct {
	Nodes    int
	Leaves   int
	Ends     int
	Contours int
	Weft     int
	Warp     int
	Segments int
}

// Name returns the label given with WithName.
func (g *Graph) Name() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.name
}

// CourseHeight returns the course height recorded with WithCourseHeight.
func (g *Graph) CourseHeight() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.courseHeight
}

// Stats counts nodes and edges by role.
// Complexity: O(V+E).
func (g *Graph) Stats() GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var s GraphStats
	s.Nodes = len(g.nodes)
	for _, n := range g.nodes {
		if n.Leaf {
			s.Leaves++
		}
		if n.End {
			s.Ends++
		}
	}
	for _, e := range g.edges {
		switch e.Role {
		case RoleContour:
			s.Contours++
		case RoleWeft:
			s.Weft++
		case RoleWarp:
			s.Warp++
		case RoleSegment:
			s.Segments++
		}
	}

	return s
}

// String renders "(N Nodes, C Contours, W Weft, P Warp, S Segments)",
// prefixed by the graph name when set.
func (g *Graph) String() string {
	s := g.Stats()
	body := fmt.Sprintf("(%d Nodes, %d Contours, %d Weft, %d Warp, %d Segments)",
		s.Nodes, s.Contours, s.Weft, s.Warp, s.Segments)
	if name := g.Name(); name != "" {
		return name + " " + body
	}

	return body
}
