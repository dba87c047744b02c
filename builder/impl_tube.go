// SPDX-License-Identifier: MIT
// Package: knitnet/builder
//
// impl_tube.go - implementation of the Tube(rows, perRow) fixture.
//
// Contract:
//   • rows ≥ MinRows, perRow ≥ MinStitches.
//   • Row r is an open ring: point i at angle 2π·i/perRow on a circle of
//     cfg.radius, lifted to Z = r·courseHeight. The ring is not closed, so the
//     first and last points stay leaves and no contour edge joins them.
//
// Complexity:
//   • Time: O(rows*perRow).
package builder

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/knitnet/core"
	"github.com/katalvlaran/knitnet/geometry"
)

// Tube returns a Constructor that builds open circular rows around a cylinder.
func Tube(rows, perRow int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		c, err := tubeCourses(rows, perRow, cfg)
		if err != nil {
			return err
		}

		return Courses(c)(g, cfg)
	}
}

func tubeCourses(rows, perRow int, cfg builderConfig) (geometry.Courses, error) {
	if err := validateRows(MethodTube, rows); err != nil {
		return geometry.Courses{}, err
	}
	if err := validateStitches(MethodTube, perRow); err != nil {
		return geometry.Courses{}, err
	}

	step := 2 * math.Pi / float64(perRow)
	out := geometry.Courses{Rows: make([]geometry.Row, rows), CourseHeight: cfg.courseHeight}
	for r := 0; r < rows; r++ {
		pts := make([]geometry.Point, perRow)
		for i := 0; i < perRow; i++ {
			theta := step * float64(i)
			pts[i] = cfg.perturb(v3.Vec{
				X: cfg.radius * math.Cos(theta),
				Y: cfg.radius * math.Sin(theta),
				Z: float64(r) * cfg.courseHeight,
			})
		}
		out.Rows[r] = geometry.Row{Points: pts}
	}

	return out, nil
}
