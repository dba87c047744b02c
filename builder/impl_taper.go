// SPDX-License-Identifier: MIT
// Package: knitnet/builder
//
// impl_taper.go - implementation of the Taper(counts...) fixture.
//
// Contract:
//   • len(counts) ≥ MinRows, every count ≥ MinStitches.
//   • All rows span the same width (max(counts)-1)·spacing; a row with fewer
//     stitches spreads them wider, so adjacent rows with different counts
//     force fan-in/fan-out weft connections (increases and decreases).
//
// Complexity:
//   • Time: O(Σ counts).
package builder

import (
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/knitnet/core"
	"github.com/katalvlaran/knitnet/geometry"
)

// Taper returns a Constructor that builds rows with the given stitch counts.
func Taper(counts ...int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		c, err := taperCourses(counts, cfg)
		if err != nil {
			return err
		}

		return Courses(c)(g, cfg)
	}
}

func taperCourses(counts []int, cfg builderConfig) (geometry.Courses, error) {
	if err := validateRows(MethodTaper, len(counts)); err != nil {
		return geometry.Courses{}, err
	}
	if err := validateStitches(MethodTaper, counts...); err != nil {
		return geometry.Courses{}, err
	}

	width := float64(slices.Max(counts)-1) * cfg.spacing
	out := geometry.Courses{Rows: make([]geometry.Row, len(counts)), CourseHeight: cfg.courseHeight}
	for r, n := range counts {
		pitch := width / float64(n-1)
		pts := make([]geometry.Point, n)
		for i := 0; i < n; i++ {
			pts[i] = cfg.perturb(v3.Vec{X: float64(i) * pitch, Y: float64(r) * cfg.courseHeight})
		}
		out.Rows[r] = geometry.Row{Points: pts}
	}

	return out, nil
}
