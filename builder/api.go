// SPDX-License-Identifier: MIT
// Package: knitnet/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildGraph(gopts, bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Course constructors live in impl_*.go; fixtures produce geometry.Courses
//     and feed them through the same Courses constructor as real input.
//   - Functional options (BuilderOption) resolve into a builderConfig passed by value.
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical graphs.

package builder

import (
	"fmt"

	"github.com/katalvlaran/knitnet/core"
	"github.com/katalvlaran/knitnet/geometry"
)

// Constructor applies a deterministic graph mutation using the resolved
// builderConfig. Constructors validate parameters early and return sentinel
// errors; they never panic.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a new core.Graph with graph options gopts, resolves the
// builder configuration from bopts, and applies all constructors in order.
// Any constructor error is wrapped with the context "BuildGraph: %w" and
// returned immediately; no partial cleanup is attempted.
//
// Complexity: Σ cost of each constructor; wrapper overhead O(K).
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}

// FromCourses initialises a Knit Graph from sampled rows and returns it with
// a Euclidean adapter over the same rows. The graph records c.CourseHeight.
//
// Errors: geometry validation sentinels (ErrNoRows, ErrShortRow, ErrCourseHeight).
// Complexity: O(P log P) for P points.
func FromCourses(c geometry.Courses, opts ...BuilderOption) (*core.Graph, *geometry.Euclidean, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, fmt.Errorf("FromCourses: %w", err)
	}
	g, err := BuildGraph([]core.GraphOption{core.WithCourseHeight(c.CourseHeight)}, opts, Courses(c))
	if err != nil {
		return nil, nil, err
	}

	return g, geometry.NewEuclidean(c), nil
}

// Apply runs a single constructor against an existing graph.
func Apply(g *core.Graph, con Constructor, opts ...BuilderOption) error {
	if g == nil || con == nil {
		return fmt.Errorf("Apply: nil graph or constructor: %w", ErrConstructFailed)
	}

	return con(g, newBuilderConfig(opts...))
}

// =============================================================================
// Fixture courses - implemented in impl_lattice.go, impl_tube.go, impl_taper.go
// =============================================================================

// LatticeCourses returns rows×cols points on a flat grid.
func LatticeCourses(rows, cols int, opts ...BuilderOption) (geometry.Courses, error) {
	return latticeCourses(rows, cols, newBuilderConfig(opts...))
}

// TubeCourses returns rows open rings of perRow points around a cylinder.
func TubeCourses(rows, perRow int, opts ...BuilderOption) (geometry.Courses, error) {
	return tubeCourses(rows, perRow, newBuilderConfig(opts...))
}

// TaperCourses returns one row per count, each spread across the same width,
// so neighbouring rows with different counts model increases and decreases.
func TaperCourses(counts []int, opts ...BuilderOption) (geometry.Courses, error) {
	return taperCourses(counts, newBuilderConfig(opts...))
}
