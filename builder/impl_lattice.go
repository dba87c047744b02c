// SPDX-License-Identifier: MIT
// Package: knitnet/builder
//
// impl_lattice.go - implementation of the Lattice(rows, cols) fixture.
//
// Canonical model:
//   • Flat swatch: point (r, c) sits at X = c·spacing, Y = r·courseHeight.
//   • rows ≥ MinRows (else ErrTooFewRows), cols ≥ MinStitches (else ErrTooFewStitches).
//   • Optional jitter (WithSeed + WithJitter) displaces points in-plane.
//
// Complexity:
//   • Time: O(rows*cols).
//
// Determinism:
//   • Row-major emission; jitter draws follow the same order.
package builder

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/knitnet/core"
	"github.com/katalvlaran/knitnet/geometry"
)

// Lattice returns a Constructor that builds a flat rows×cols swatch.
func Lattice(rows, cols int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		c, err := latticeCourses(rows, cols, cfg)
		if err != nil {
			return err
		}

		return Courses(c)(g, cfg)
	}
}

func latticeCourses(rows, cols int, cfg builderConfig) (geometry.Courses, error) {
	if err := validateRows(MethodLattice, rows); err != nil {
		return geometry.Courses{}, err
	}
	if err := validateStitches(MethodLattice, cols); err != nil {
		return geometry.Courses{}, err
	}

	out := geometry.Courses{Rows: make([]geometry.Row, rows), CourseHeight: cfg.courseHeight}
	for r := 0; r < rows; r++ {
		pts := make([]geometry.Point, cols)
		for c := 0; c < cols; c++ {
			pts[c] = cfg.perturb(v3.Vec{X: float64(c) * cfg.spacing, Y: float64(r) * cfg.courseHeight})
		}
		out.Rows[r] = geometry.Row{Points: pts}
	}

	return out, nil
}
